package wizard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/wizard"
)

var audiences = []model.Audience{
	{ID: "aud1", Name: "Propietarios Centro", Size: 1245, Status: model.AudienceActive,
		Filters: &model.AudienceFilters{Neighborhoods: []string{"Salamanca"}}},
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var ve *appErrors.ValidationError
	require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
	return ve.Message
}

func TestNextWithoutAudienceStaysOnStepOne(t *testing.T) {
	w := wizard.New(audiences, nil)
	w.Open()

	done, err := w.Next(context.Background())
	assert.False(t, done)
	assert.Equal(t, "Por favor selecciona una audiencia", validationMessage(t, err))
	assert.Equal(t, wizard.StepAudience, w.Step())
}

func TestNextWithAudienceMovesToStepTwo(t *testing.T) {
	w := wizard.New(audiences, nil)
	w.SetAudience("aud1")

	_, err := w.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wizard.StepTemplate, w.Step())
	assert.Equal(t, []string{"Salamanca"}, w.State().Summary.Neighborhoods)
}

func TestUnknownAudienceIsRejected(t *testing.T) {
	w := wizard.New(audiences, nil)
	w.SetAudience("ghost")
	_, err := w.Next(context.Background())
	assert.True(t, appErrors.IsValidation(err))
	assert.Equal(t, wizard.StepAudience, w.Step())
}

func TestPreviousNeverValidates(t *testing.T) {
	w := wizard.New(audiences, nil)
	w.Previous()
	assert.Equal(t, wizard.StepAudience, w.Step())

	w.SetAudience("aud1")
	_, err := w.Next(context.Background())
	require.NoError(t, err)
	w.SetAudience("")
	w.Previous()
	assert.Equal(t, wizard.StepAudience, w.Step())
}

func TestFullRunInvokesCallbackAndResets(t *testing.T) {
	var got *wizard.Submission
	w := wizard.New(audiences, func(_ context.Context, s wizard.Submission) error {
		got = &s
		return nil
	})
	w.Open()

	w.SetAudience("aud1")
	_, err := w.Next(context.Background())
	require.NoError(t, err)

	_, err = w.Next(context.Background())
	assert.Equal(t, "Por favor selecciona una plantilla", validationMessage(t, err))
	w.SetTemplate("template1")
	_, err = w.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"nombre": "contact_name", "telefono": "contact_phone"}, w.Draft().Variables)
	require.NoError(t, w.BindVariable("nombre", "first_name"))
	_, err = w.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wizard.StepScheduling, w.Step())
	assert.Equal(t, "Confirmar y crear", w.State().NextLabel)

	_, err = w.Next(context.Background())
	assert.Equal(t, "Por favor ingresa un nombre para la campaña", validationMessage(t, err))
	w.SetName("Promoción mayo")
	_, err = w.Next(context.Background())
	assert.Equal(t, "Por favor programa una fecha y hora", validationMessage(t, err))
	w.SetSchedule("2025-05-10T10:30", "america-bogota")

	done, err := w.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	require.NotNil(t, got)
	assert.Equal(t, "Promoción mayo", got.Name)
	assert.Equal(t, "aud1", got.AudienceID)
	assert.Equal(t, "first_name", got.Variables["nombre"])
	assert.True(t, got.ScheduledDate.Equal(time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)))

	assert.Equal(t, wizard.StepAudience, w.Step())
	assert.Equal(t, "", w.Draft().AudienceID)
	assert.False(t, w.IsOpen())
}

func TestInvalidDateStaysOnLastStep(t *testing.T) {
	w := wizard.New(audiences, nil)
	w.SetAudience("aud1")
	w.Next(context.Background())
	w.SetTemplate("template2")
	w.Next(context.Background())
	w.Next(context.Background())
	w.SetName("x")
	w.SetSchedule("mañana", "")
	_, err := w.Next(context.Background())
	assert.True(t, appErrors.IsValidation(err))
	assert.Equal(t, wizard.StepScheduling, w.Step())
}

func TestCallbackErrorKeepsDraft(t *testing.T) {
	w := wizard.New(audiences, func(context.Context, wizard.Submission) error { return errors.New("boom") })
	w.SetAudience("aud1")
	w.Next(context.Background())
	w.SetTemplate("template1")
	w.Next(context.Background())
	w.Next(context.Background())
	w.SetName("x")
	w.SetSchedule("2025-05-10T10:30", "")
	done, err := w.Next(context.Background())
	assert.False(t, done)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, "x", w.Draft().Name)
}

func TestCancelResetsWithoutCallback(t *testing.T) {
	called := false
	w := wizard.New(audiences, func(context.Context, wizard.Submission) error { called = true; return nil })
	w.Open()
	w.SetAudience("aud1")
	w.Next(context.Background())

	w.Cancel()
	assert.False(t, called)
	assert.False(t, w.IsOpen())
	assert.Equal(t, wizard.StepAudience, w.Step())
	assert.Equal(t, "", w.Draft().AudienceID)
}

func TestBindUnknownVariable(t *testing.T) {
	w := wizard.New(audiences, nil)
	w.SetTemplate("template1")
	assert.True(t, appErrors.IsValidation(w.BindVariable("email", "x")))
}
