package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
)

// AudienceRepository stores audiences in Postgres.
type AudienceRepository struct {
	DB *sql.DB
}

const audienceColumns = `id, name, size, last_run, status, filters, contact_ids`

func scanAudience(row interface{ Scan(...any) error }) (*model.Audience, error) {
	var a model.Audience
	var filters []byte
	if err := row.Scan(&a.ID, &a.Name, &a.Size, &a.LastRun, &a.Status, &filters, pq.Array(&a.ContactIDs)); err != nil {
		return nil, err
	}
	if len(filters) > 0 && string(filters) != "null" {
		a.Filters = &model.AudienceFilters{}
		if err := json.Unmarshal(filters, a.Filters); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func (r *AudienceRepository) List(ctx context.Context) ([]model.Audience, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+audienceColumns+` FROM audiences ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	audiences := []model.Audience{}
	for rows.Next() {
		a, err := scanAudience(rows)
		if err != nil {
			return nil, err
		}
		audiences = append(audiences, *a)
	}
	return audiences, rows.Err()
}

func (r *AudienceRepository) GetByID(ctx context.Context, id string) (*model.Audience, error) {
	a, err := scanAudience(r.DB.QueryRowContext(ctx, `SELECT `+audienceColumns+` FROM audiences WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFound("audience", id)
	}
	return a, err
}

// audienceArgs binds a in column order with the id first.
func audienceArgs(a *model.Audience) ([]any, error) {
	filters, err := json.Marshal(a.Filters)
	if err != nil {
		return nil, err
	}
	return []any{a.ID, a.Name, a.Size, a.LastRun, a.Status, filters, textArray(a.ContactIDs)}, nil
}

func (r *AudienceRepository) Create(ctx context.Context, a *model.Audience) error {
	if a.Status == "" {
		a.Status = model.AudienceActive
	}
	args, err := audienceArgs(a)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO audiences (id, name, size, last_run, status, filters, contact_ids)
        VALUES (COALESCE(NULLIF($1, ''), 'aud' || nextval('audiences_seq')), $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query, args...).Scan(&a.ID)
}

func (r *AudienceRepository) Update(ctx context.Context, a *model.Audience) error {
	args, err := audienceArgs(a)
	if err != nil {
		return err
	}
	query := `
        UPDATE audiences
        SET name=$2, size=$3, last_run=$4, status=$5, filters=$6, contact_ids=$7
        WHERE id=$1
    `
	res, err := r.DB.ExecContext(ctx, query, args...)
	return checkAffected(res, err, "audience", a.ID)
}

func (r *AudienceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM audiences WHERE id=$1`, id)
	return checkAffected(res, err, "audience", id)
}

func checkAffected(res sql.Result, err error, entity, id string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewNotFound(entity, id)
	}
	return nil
}

var _ AudienceRepositoryInterface = (*AudienceRepository)(nil)
