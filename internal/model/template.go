// internal/model/template.go
package model

import (
	"regexp"
	"strings"
)

// Template is a pre-approved WhatsApp message template.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Body string `json:"body"`
}

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Variables lists the placeholder names in the body, in order of first appearance.
func (t Template) Variables() []string {
	seen := map[string]bool{}
	vars := []string{}
	for _, m := range placeholderRe.FindAllStringSubmatch(t.Body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return vars
}

// Render replaces {{name}} placeholders with values; unknown placeholders are left as-is.
func (t Template) Render(values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(t.Body, func(m string) string {
		key := strings.Trim(m, "{}")
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}

const defaultTemplateBody = "Hola {{nombre}}, gracias por ser parte de nuestra comunidad. " +
	"Tenemos una oferta especial para ti. Contacta con nosotros al {{telefono}}."

var Templates = []Template{
	{ID: "template1", Name: "Promoción mensual", Body: defaultTemplateBody},
	{ID: "template2", Name: "Recordatorio de cita", Body: "Hola {{nombre}}, te recordamos tu cita. Si necesitas cambiarla llámanos al {{telefono}}."},
	{ID: "template3", Name: "Notificación de evento", Body: "Hola {{nombre}}, te invitamos a nuestro próximo evento. Confirma tu asistencia al {{telefono}}."},
}

func FindTemplate(id string) (Template, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Contact fields a template variable can be bound to.
var VariableFields = map[string][]string{
	"nombre":   {"contact_name", "first_name"},
	"telefono": {"contact_phone", "mobile_phone"},
}

var DefaultVariableBindings = map[string]string{
	"nombre":   "contact_name",
	"telefono": "contact_phone",
}

// ContactFieldValue resolves a bound field for a contact.
func ContactFieldValue(c Contact, field string) string {
	switch field {
	case "contact_name":
		return c.Name
	case "first_name":
		if i := strings.IndexByte(c.Name, ' '); i > 0 {
			return c.Name[:i]
		}
		return c.Name
	case "contact_phone", "mobile_phone":
		return c.Phone
	}
	return ""
}
