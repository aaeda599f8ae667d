package domain

// Category is static reference data. The registry is fixed at startup.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Categories is the built-in registry in display order.
var Categories = []Category{
	{ID: "work", Name: "Work", Icon: "💼", Color: "#83a598"},
	{ID: "personal", Name: "Personal", Icon: "🏠", Color: "#8ec07c"},
	{ID: "health", Name: "Health", Icon: "🍎", Color: "#fb4934"},
	{ID: "finance", Name: "Finance", Icon: "💰", Color: "#fabd2f"},
	{ID: "education", Name: "Learning", Icon: "📚", Color: "#d3869b"},
}

// DefaultCategoryID is used when a new task names no known category.
const DefaultCategoryID = "work"

// CategoryByID looks up a registry entry.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
