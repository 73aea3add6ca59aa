package repository

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/seed"
)

// driverValues resolves every bound argument the way database/sql would
// before sending it.
func driverValues(t *testing.T, args []any) []driver.Value {
	t.Helper()
	out := make([]driver.Value, len(args))
	for i, arg := range args {
		v, ok := arg.(driver.Valuer)
		if !ok {
			out[i] = arg
			continue
		}
		val, err := v.Value()
		require.NoError(t, err)
		out[i] = val
	}
	return out
}

func TestTextArrayBindsNilAsEmptyArray(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want driver.Value
	}{
		{"nil", nil, "{}"},
		{"empty", []string{}, "{}"},
		{"values", []string{"VIP", "Inversor"}, `{"VIP","Inversor"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textArray(tt.in).Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAudienceArgsHaveNoNullArrays(t *testing.T) {
	audiences := append(seed.Audiences(), model.Audience{Name: "Nueva audiencia"})
	for _, a := range audiences {
		args, err := audienceArgs(&a)
		require.NoError(t, err)
		values := driverValues(t, args)
		require.Len(t, values, 7)
		assert.NotNil(t, values[6], "contact_ids of %q", a.Name)
	}
}

func TestContactArgsHaveNoNullArrays(t *testing.T) {
	contacts := append(seed.Contacts(), model.Contact{Name: "Luis Pérez", Phone: "+34 600 000 000"})
	for _, c := range contacts {
		values := driverValues(t, contactArgs(&c))
		require.Len(t, values, 13)
		assert.NotNil(t, values[6], "tags of %q", c.Name)
		assert.NotNil(t, values[9], "audiences of %q", c.Name)
	}
}
