package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
)

// CampaignRepository stores campaigns in Postgres. Metrics, variables and the
// edit history live in jsonb columns.
type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, name, audience_id, audience_name, scheduled_date, status, metrics, template,
        variables, audience_size, message_text, last_edited, edit_history`

func scanCampaign(row interface{ Scan(...any) error }) (*model.Campaign, error) {
	var c model.Campaign
	var metrics, variables, history []byte
	var audienceSize sql.NullInt64
	err := row.Scan(&c.ID, &c.Name, &c.AudienceID, &c.AudienceName, &c.ScheduledDate, &c.Status, &metrics,
		&c.Template, &variables, &audienceSize, &c.MessageText, &c.LastEdited, &history)
	if err != nil {
		return nil, err
	}
	if audienceSize.Valid {
		n := int(audienceSize.Int64)
		c.AudienceSize = &n
	}
	for _, col := range []struct {
		raw  []byte
		dest any
	}{{metrics, &c.Metrics}, {variables, &c.Variables}, {history, &c.EditHistory}} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func campaignJSON(c *model.Campaign) (metrics, variables, history []byte, err error) {
	if metrics, err = json.Marshal(c.Metrics); err != nil {
		return
	}
	if variables, err = json.Marshal(c.Variables); err != nil {
		return
	}
	history, err = json.Marshal(c.EditHistory)
	return
}

func (r *CampaignRepository) List(ctx context.Context) ([]model.Campaign, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewNotFound("campaign", id)
	}
	return c, err
}

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	if c.Status == "" {
		c.Status = model.CampaignScheduled
	}
	metrics, variables, history, err := campaignJSON(c)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO campaigns (id, name, audience_id, audience_name, scheduled_date, status, metrics, template,
            variables, audience_size, message_text, last_edited, edit_history)
        VALUES (COALESCE(NULLIF($1, ''), 'camp' || nextval('campaigns_seq')), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query, c.ID, c.Name, c.AudienceID, c.AudienceName, c.ScheduledDate, c.Status,
		metrics, c.Template, variables, c.AudienceSize, c.MessageText, c.LastEdited, history).Scan(&c.ID)
}

func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	metrics, variables, history, err := campaignJSON(c)
	if err != nil {
		return err
	}
	query := `
        UPDATE campaigns
        SET name=$1, audience_id=$2, audience_name=$3, scheduled_date=$4, status=$5, metrics=$6, template=$7,
            variables=$8, audience_size=$9, message_text=$10, last_edited=$11, edit_history=$12
        WHERE id=$13
    `
	res, err := r.DB.ExecContext(ctx, query, c.Name, c.AudienceID, c.AudienceName, c.ScheduledDate, c.Status, metrics,
		c.Template, variables, c.AudienceSize, c.MessageText, c.LastEdited, history, c.ID)
	return checkAffected(res, err, "campaign", c.ID)
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	return checkAffected(res, err, "campaign", id)
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
