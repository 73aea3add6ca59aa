package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/repository"
	"github.com/unclebandit/audience-crm/internal/seed"
)

func TestSeedAllSkipsExistingRows(t *testing.T) {
	ctx := context.Background()
	existing := seed.Audiences()[:1]
	existing[0].Name = "Renamed"
	repo := repository.NewMemoryAudienceRepository(existing)

	require.NoError(t, seedAll(ctx, repository.AudienceRepositoryInterface(repo), seed.Audiences(), false))

	list, _ := repo.List(ctx)
	assert.Len(t, list, 5)
	a, _ := repo.GetByID(ctx, "aud1")
	assert.Equal(t, "Renamed", a.Name)
}

func TestSeedAllOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryContactRepository([]model.Contact{{ID: "cont1", Name: "Old"}})

	require.NoError(t, seedAll[model.Contact](ctx, repo, seed.Contacts(), true))

	c, _ := repo.GetByID(ctx, "cont1")
	assert.Equal(t, "Ana García", c.Name)
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--overwrite", "--migrate=false"}))

	overwrite, _ := cmd.Flags().GetBool("overwrite")
	migrate, _ := cmd.Flags().GetBool("migrate")
	assert.True(t, overwrite)
	assert.False(t, migrate)
}
