// internal/service/template_service.go
package service

import "github.com/unclebandit/audience-crm/internal/model"

// RenderMessage fills a template for one contact using the campaign's
// variable bindings. Unbound or empty values render as "<unknown>".
func RenderMessage(t model.Template, bindings map[string]string, c model.Contact) string {
	values := map[string]string{}
	for _, v := range t.Variables() {
		field := bindings[v]
		if field == "" {
			field = model.DefaultVariableBindings[v]
		}
		value := model.ContactFieldValue(c, field)
		if value == "" {
			value = "<unknown>"
		}
		values[v] = value
	}
	return t.Render(values)
}
