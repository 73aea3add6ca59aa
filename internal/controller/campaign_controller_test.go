package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/audience-crm/internal/controller"
	"github.com/unclebandit/audience-crm/internal/dashboard"
	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/repository"
	"github.com/unclebandit/audience-crm/internal/seed"
	"github.com/unclebandit/audience-crm/internal/service"
)

// --- Mock Repositories ---

type MockContactRepo struct{}

func (m *MockContactRepo) List(ctx context.Context) ([]model.Contact, error) { return nil, nil }
func (m *MockContactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	if id != "c1" {
		return nil, appErrors.NewNotFound("contact", id)
	}
	return &model.Contact{ID: "c1", Name: "Alice Smith", Phone: "+34 600 000 001"}, nil
}
func (m *MockContactRepo) Create(ctx context.Context, c *model.Contact) error { return nil }
func (m *MockContactRepo) Update(ctx context.Context, c *model.Contact) error { return nil }
func (m *MockContactRepo) Delete(ctx context.Context, id string) error        { return nil }

type MockCampaignRepo struct{}

func (m *MockCampaignRepo) List(ctx context.Context) ([]model.Campaign, error) { return nil, nil }
func (m *MockCampaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	return &model.Campaign{ID: id, Template: "template1"}, nil
}
func (m *MockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error { return nil }
func (m *MockCampaignRepo) Update(ctx context.Context, c *model.Campaign) error { return nil }
func (m *MockCampaignRepo) Delete(ctx context.Context, id string) error        { return nil }

// --- Helpers ---

type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func newRouter(svc dashboard.Services) http.Handler {
	return controller.NewRouter(dashboard.NewStore(svc), &controller.CampaignController{CampaignService: svc.Campaigns})
}

func newClient(t *testing.T) *client {
	audiences := repository.NewMemoryAudienceRepository(seed.Audiences())
	campaigns := repository.NewMemoryCampaignRepository(seed.Campaigns())
	contacts := repository.NewMemoryContactRepository(seed.Contacts())
	svc := dashboard.Services{
		Audiences: &service.AudienceService{AudienceRepo: audiences, ContactRepo: contacts},
		Campaigns: &service.CampaignService{CampaignRepo: campaigns, AudienceRepo: audiences, ContactRepo: contacts},
		Contacts:  &service.ContactService{ContactRepo: contacts},
	}
	return &client{t: t, h: newRouter(svc)}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(c.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		c.cookie = ck
	}
	out := map[string]any{}
	_ = json.NewDecoder(w.Body).Decode(&out)
	return w.Code, out
}

func items(t *testing.T, res map[string]any) []map[string]any {
	t.Helper()
	raw, ok := res["items"].([]any)
	if !ok {
		t.Fatalf("items missing in %v", res)
	}
	out := []map[string]any{}
	for _, it := range raw {
		out = append(out, it.(map[string]any))
	}
	return out
}

// --- Tests ---

func TestPersonalizedPreviewHandler(t *testing.T) {
	svc := &service.CampaignService{
		CampaignRepo: &MockCampaignRepo{},
		ContactRepo:  &MockContactRepo{},
	}
	h := newRouter(dashboard.Services{Campaigns: svc})

	b, _ := json.Marshal(map[string]any{"contact_id": "c1"})
	req := httptest.NewRequest("POST", "/campanas/camp1/preview", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	msg, ok := res["rendered_message"].(string)
	if !ok {
		t.Fatalf("rendered_message not found or not a string")
	}
	if !strings.Contains(msg, "Alice Smith") {
		t.Errorf("expected 'Alice Smith' in message, got %q", msg)
	}
}

func TestPersonalizedPreviewUnknownContact(t *testing.T) {
	svc := &service.CampaignService{CampaignRepo: &MockCampaignRepo{}, ContactRepo: &MockContactRepo{}}
	h := newRouter(dashboard.Services{Campaigns: svc})

	req := httptest.NewRequest("POST", "/campanas/camp1/preview", strings.NewReader(`{"contact_id":"c2"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCampaignListAndFilters(t *testing.T) {
	c := newClient(t)

	code, res := c.do("GET", "/campanas", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, items(t, res), 3)

	code, res = c.do("PUT", "/campanas/filters/status", map[string]any{"value": "in-progress"})
	require.Equal(t, http.StatusOK, code)
	got := items(t, res)
	require.Len(t, got, 1)
	assert.Equal(t, "camp2", got[0]["id"])
	assert.Equal(t, "72.0%", got[0]["read_rate"])

	code, res = c.do("PUT", "/campanas/filters/status", map[string]any{"value": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.NotEmpty(t, res["error"])

	code, _ = c.do("PUT", "/campanas/filters/status", "{bad json")
	assert.Equal(t, http.StatusBadRequest, code)

	code, res = c.do("DELETE", "/campanas/filters", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, items(t, res), 3)

	code, _ = c.do("POST", "/campanas/filters", map[string]any{"id": "unknown"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCampaignSelectionAndPanel(t *testing.T) {
	c := newClient(t)

	code, res := c.do("POST", "/campanas/camp2/select", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, res["selected"])

	_, res = c.do("GET", "/campanas/panel", nil)
	panel := res["panel"].(map[string]any)
	assert.Equal(t, "10.2%", panel["response_rate"])

	code, res = c.do("DELETE", "/campanas/camp2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Campaña eliminada correctamente", res["notice"].(map[string]any)["message"])

	_, res = c.do("GET", "/campanas/panel", nil)
	assert.Nil(t, res["panel"])

	code, _ = c.do("DELETE", "/campanas/camp2", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCampaignWizardOverHTTP(t *testing.T) {
	c := newClient(t)

	code, _ := c.do("POST", "/campanas/wizard/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, res := c.do("POST", "/campanas/wizard", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, res["open"])

	code, res = c.do("POST", "/campanas/wizard/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Por favor selecciona una audiencia", res["error"])

	c.do("PUT", "/campanas/wizard", map[string]any{"audience_id": "aud1", "template_id": "template3"})
	for i := 0; i < 3; i++ {
		code, _ = c.do("POST", "/campanas/wizard/next", nil)
		require.Equal(t, http.StatusOK, code)
	}
	code, res = c.do("POST", "/campanas/wizard/previous", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), res["step"])
	c.do("POST", "/campanas/wizard/next", nil)

	code, res = c.do("POST", "/campanas/wizard/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Por favor ingresa un nombre para la campaña", res["error"])

	c.do("PUT", "/campanas/wizard", map[string]any{
		"name": "Evento junio", "scheduled_date": "2025-06-02T18:00", "timezone": "america-mexico",
	})
	code, res = c.do("POST", "/campanas/wizard/next", nil)
	require.Equal(t, http.StatusOK, code)
	campaign := res["campaign"].(map[string]any)
	assert.Equal(t, "Evento junio", campaign["name"])
	assert.Equal(t, "scheduled", campaign["status"])

	_, res = c.do("GET", "/campanas", nil)
	assert.Len(t, items(t, res), 4)
}
