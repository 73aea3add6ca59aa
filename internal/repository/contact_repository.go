package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
)

// ContactRepository stores contacts in Postgres.
type ContactRepository struct {
	DB *sql.DB
}

const contactColumns = `id, name, phone, age, properties, neighborhood, tags, status, created_at, audiences,
        last_campaign, response_status, notes`

func scanContact(row interface{ Scan(...any) error }) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Age, &c.Properties, &c.Neighborhood, pq.Array(&c.Tags), &c.Status,
		&c.CreatedAt, pq.Array(&c.Audiences), &c.LastCampaign, &c.ResponseStatus, &c.Notes)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]model.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY inserted_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFound("contact", id)
	}
	return c, err
}

// contactArgs binds c in column order with the id first.
func contactArgs(c *model.Contact) []any {
	return []any{c.ID, c.Name, c.Phone, c.Age, c.Properties, c.Neighborhood, textArray(c.Tags), c.Status,
		c.CreatedAt, textArray(c.Audiences), c.LastCampaign, c.ResponseStatus, c.Notes}
}

func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) error {
	query := `
        INSERT INTO contacts (id, name, phone, age, properties, neighborhood, tags, status, created_at, audiences,
            last_campaign, response_status, notes)
        VALUES (COALESCE(NULLIF($1, ''), 'cont' || nextval('contacts_seq')), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query, contactArgs(c)...).Scan(&c.ID)
}

func (r *ContactRepository) Update(ctx context.Context, c *model.Contact) error {
	query := `
        UPDATE contacts
        SET name=$2, phone=$3, age=$4, properties=$5, neighborhood=$6, tags=$7, status=$8, created_at=$9,
            audiences=$10, last_campaign=$11, response_status=$12, notes=$13
        WHERE id=$1
    `
	res, err := r.DB.ExecContext(ctx, query, contactArgs(c)...)
	return checkAffected(res, err, "contact", c.ID)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	return checkAffected(res, err, "contact", id)
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
