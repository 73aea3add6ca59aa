package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/repository"
	"github.com/unclebandit/audience-crm/internal/seed"
	"github.com/unclebandit/audience-crm/internal/service"
	"github.com/unclebandit/audience-crm/internal/wizard"
)

var fixedNow = time.Date(2025, 5, 1, 18, 32, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// MockQueue records published payloads.
type MockQueue struct {
	mu        sync.Mutex
	published []any
}

func (m *MockQueue) Publish(topic string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, payload)
	return nil
}

func (m *MockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }

type fixture struct {
	ctx       context.Context
	queue     *MockQueue
	audiences *repository.MemoryRepository[model.Audience]
	campaigns *repository.MemoryRepository[model.Campaign]
	contacts  *repository.MemoryRepository[model.Contact]
	audience  *service.AudienceService
	campaign  *service.CampaignService
	contact   *service.ContactService
}

func newFixture() *fixture {
	f := &fixture{
		ctx:       context.Background(),
		queue:     &MockQueue{},
		audiences: repository.NewMemoryAudienceRepository(seed.Audiences()),
		campaigns: repository.NewMemoryCampaignRepository(seed.Campaigns()),
		contacts:  repository.NewMemoryContactRepository(seed.Contacts()),
	}
	n := &service.Notifier{Queue: f.queue}
	f.audience = &service.AudienceService{AudienceRepo: f.audiences, ContactRepo: f.contacts, Notifier: n, Now: clock}
	f.campaign = &service.CampaignService{CampaignRepo: f.campaigns, AudienceRepo: f.audiences, ContactRepo: f.contacts, Notifier: n, Now: clock}
	f.contact = &service.ContactService{ContactRepo: f.contacts, Notifier: n, Now: clock}
	return f
}

func TestCreateCampaignFromWizard(t *testing.T) {
	f := newFixture()
	c, notice, err := f.campaign.CreateCampaign(f.ctx, wizard.Submission{
		Name:          "Promoción mayo",
		AudienceID:    "aud2",
		TemplateID:    "template1",
		Variables:     map[string]string{"nombre": "first_name", "telefono": "contact_phone"},
		ScheduledDate: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "camp4", c.ID)
	assert.Equal(t, "Inversores Premium", c.AudienceName)
	require.NotNil(t, c.AudienceSize)
	assert.Equal(t, 857, *c.AudienceSize)
	assert.Equal(t, model.CampaignScheduled, c.Status)
	assert.NotEmpty(t, c.MessageText)
	require.Len(t, c.EditHistory, 1)
	assert.Equal(t, `Campaña "Promoción mayo" creada correctamente`, notice.Message)
	assert.Len(t, f.queue.published, 1)

	stored, err := f.campaigns.GetByID(f.ctx, "camp4")
	require.NoError(t, err)
	assert.Equal(t, "Promoción mayo", stored.Name)
}

func TestCreateCampaignWithUnknownAudienceKeepsGoing(t *testing.T) {
	f := newFixture()
	c, _, err := f.campaign.CreateCampaign(f.ctx, wizard.Submission{Name: "x", AudienceID: "gone", TemplateID: "template2"})
	require.NoError(t, err)
	assert.Equal(t, "", c.AudienceName)
	assert.Nil(t, c.AudienceSize)
}

func TestDeleteCampaignNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.campaign.DeleteCampaign(f.ctx, "camp99")
	assert.True(t, appErrors.IsNotFound(err))
	assert.Empty(t, f.queue.published)
}

func TestDuplicateCampaign(t *testing.T) {
	f := newFixture()
	dup, _, err := f.campaign.DuplicateCampaign(f.ctx, "camp2")
	require.NoError(t, err)
	assert.Equal(t, "camp4", dup.ID)
	assert.Equal(t, "Evento exclusivo inversores (copia)", dup.Name)
	assert.Equal(t, model.CampaignScheduled, dup.Status)
	assert.Nil(t, dup.Metrics)

	orig, _ := f.campaigns.GetByID(f.ctx, "camp2")
	assert.NotNil(t, orig.Metrics)
}

func TestCancelOnlyScheduledCampaigns(t *testing.T) {
	f := newFixture()
	c, notice, err := f.campaign.CancelCampaign(f.ctx, "camp1")
	require.NoError(t, err)
	assert.Equal(t, model.CampaignCanceled, c.Status)
	assert.Equal(t, model.NoticeInfo, notice.Level)

	_, _, err = f.campaign.CancelCampaign(f.ctx, "camp3")
	assert.True(t, appErrors.IsValidation(err))
}

func TestRenderPreview(t *testing.T) {
	f := newFixture()
	msg, err := f.campaign.RenderPreview(f.ctx, "camp1", "cont1", nil)
	require.NoError(t, err)
	assert.Contains(t, msg, "Hola Ana García")
	assert.Contains(t, msg, "+34 666 777 888")

	override := "Hi {{nombre}} / {{otro}}"
	msg, err = f.campaign.RenderPreview(f.ctx, "camp1", "cont1", &override)
	require.NoError(t, err)
	assert.Equal(t, "Hi Ana García / <unknown>", msg)

	_, err = f.campaign.RenderPreview(f.ctx, "camp1", "cont99", nil)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestDetailsRates(t *testing.T) {
	c, _ := repository.NewMemoryCampaignRepository(seed.Campaigns()).GetByID(context.Background(), "camp2")
	d := service.DetailsOf(*c)
	assert.Equal(t, "72.0%", d.ReadRate)
	assert.Equal(t, "10.2%", d.ResponseRate)
	assert.Equal(t, 2, d.Failed)
	assert.Equal(t, "En curso", d.StatusLabel)

	d = service.DetailsOf(model.Campaign{Status: model.CampaignScheduled})
	assert.Equal(t, "-", d.ReadRate)
}

func TestCreateContactValidation(t *testing.T) {
	f := newFixture()
	_, notice, err := f.contact.CreateContact(f.ctx, model.Contact{Phone: "+34 600"})
	assert.True(t, appErrors.IsValidation(err))
	assert.Equal(t, "Por favor ingresa un nombre", err.Error())
	assert.Equal(t, model.NoticeError, notice.Level)

	_, _, err = f.contact.CreateContact(f.ctx, model.Contact{Name: "Rosa"})
	assert.Equal(t, "Por favor ingresa un teléfono", err.Error())
}

func TestCreateContactDefaults(t *testing.T) {
	f := newFixture()
	c, notice, err := f.contact.CreateContact(f.ctx, model.Contact{Name: " Rosa ", Phone: "+34 600 100 200", Age: 33})
	require.NoError(t, err)
	assert.Equal(t, "cont7", c.ID)
	assert.Equal(t, "Rosa", c.Name)
	assert.Equal(t, model.ContactActive, c.Status)
	assert.Equal(t, "2025-05-01", c.CreatedAt)
	assert.Equal(t, "-", c.LastCampaign)
	assert.Equal(t, "Contacto creado correctamente", notice.Message)
}

func TestSegmentIsAndAcrossCriteria(t *testing.T) {
	f := newFixture()
	got, err := f.contact.Segment(f.ctx, model.AudienceFilters{Neighborhoods: []string{"Chamberí", "Retiro"}})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = f.contact.Segment(f.ctx, model.AudienceFilters{
		Neighborhoods: []string{"Chamberí", "Retiro"},
		Properties:    []string{"5+"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cont2", got[0].ID)
	assert.Equal(t, "cont4", got[1].ID)

	all, err := f.contact.Segment(f.ctx, model.AudienceFilters{})
	require.NoError(t, err)
	assert.Len(t, all, len(seed.Contacts()))
}

func TestSaveSegmentSizeMatchesMembers(t *testing.T) {
	f := newFixture()
	criteria := model.AudienceFilters{Age: []string{"50-70", "70+"}}
	members, err := f.contact.Segment(f.ctx, criteria)
	require.NoError(t, err)

	a, notice, err := f.audience.SaveSegment(f.ctx, "  ", criteria, members)
	require.NoError(t, err)
	assert.Equal(t, "aud6", a.ID)
	assert.Equal(t, service.DefaultAudienceName, a.Name)
	assert.Equal(t, len(members), a.Size)
	assert.Equal(t, "2025-05-01", a.LastRun)
	assert.Contains(t, notice.Message, "guardada correctamente")
}

func TestUpdateMembersSetsSize(t *testing.T) {
	f := newFixture()
	a, _, err := f.audience.UpdateMembers(f.ctx, "aud4", []string{"cont1", "cont3", "cont1"})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Size)

	members, err := f.audience.Members(f.ctx, *a)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestBreakdownOfMembersByName(t *testing.T) {
	f := newFixture()
	a, err := f.audience.Get(f.ctx, "aud2")
	require.NoError(t, err)
	members, err := f.audience.Members(f.ctx, *a)
	require.NoError(t, err)

	b := service.BreakdownOf(members)
	assert.Equal(t, 2, b.Members)
	assert.Equal(t, []service.Bucket{{Name: "20-35"}, {Name: "35-50", Value: 1}, {Name: "50-70"}, {Name: "70+", Value: 1}}, b.Age)
	assert.Equal(t, []service.Bucket{{Name: "1"}, {Name: "2-5", Value: 1}, {Name: "5+", Value: 1}}, b.Properties)
}

func TestUpdateMembersRejectsUnknownContact(t *testing.T) {
	f := newFixture()
	_, _, err := f.audience.UpdateMembers(f.ctx, "aud4", []string{"cont1", "cont42"})
	assert.True(t, appErrors.IsNotFound(err))

	a, _ := f.audience.Get(f.ctx, "aud4")
	assert.Equal(t, 412, a.Size)
}

func TestNilNotifierStillBuildsNotices(t *testing.T) {
	var n *service.Notifier
	notice := n.Notify(model.NoticeInfo, "hola")
	assert.Equal(t, "hola", notice.Message)
	assert.Equal(t, model.NoticeInfo, notice.Level)
}
