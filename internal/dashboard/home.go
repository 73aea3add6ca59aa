package dashboard

// Module is a card on the home screen.
type Module struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

var Modules = []Module{
	{Title: "Audiencias", Description: "Gestiona y crea audiencias para tus campañas de marketing.", Path: "/audiencias"},
	{Title: "Campañas", Description: "Crea y analiza campañas de marketing.", Path: "/campanas"},
	{Title: "Contactos", Description: "Administra tu base de datos de contactos.", Path: "/contactos"},
}

// Shortcut is a quick action listed under the modules.
type Shortcut struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var Shortcuts = []Shortcut{
	{Label: "Ver audiencias", Path: "/audiencias"},
	{Label: "Crear audiencia", Path: "/audiencias/constructor"},
	{Label: "Nueva campaña", Path: "/campanas"},
}

type Home struct {
	Modules   []Module   `json:"modules"`
	Shortcuts []Shortcut `json:"shortcuts"`
}

func HomeScreen() Home {
	return Home{Modules: Modules, Shortcuts: Shortcuts}
}
