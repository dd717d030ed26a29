package model

// Category is a spending category. The table is fixed at compile time; the
// engine treats CategoryID as an opaque key with no integrity enforcement.
type Category struct {
	ID     string
	Name   string // English display name
	NameNo string // Norwegian display name
	Icon   string
}

// Categories is the fixed, ordered category table.
var Categories = []Category{
	{ID: "groceries", Name: "Groceries", NameNo: "Dagligvarer", Icon: "shopping-cart"},
	{ID: "dining", Name: "Dining", NameNo: "Restauranter", Icon: "utensils"},
	{ID: "transportation", Name: "Transportation", NameNo: "Transport", Icon: "bus"},
	{ID: "entertainment", Name: "Entertainment", NameNo: "Underholdning", Icon: "film"},
	{ID: "shopping", Name: "Shopping", NameNo: "Shopping", Icon: "shopping-bag"},
	{ID: "health", Name: "Health", NameNo: "Helse", Icon: "heart"},
	{ID: "utilities", Name: "Utilities", NameNo: "Strøm/Vann", Icon: "home"},
	{ID: "other", Name: "Other", NameNo: "Annet", Icon: "more-horizontal"},
}

// CategoryByID returns the category with the given id, falling back to the
// "other" entry for unknown ids. Display concern only; orphaned transaction
// category ids are never rewritten.
func CategoryByID(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[len(Categories)-1]
}

// DisplayName returns the category name for the given language ("en" or "no").
func (c Category) DisplayName(lang string) string {
	if lang == "no" {
		return c.NameNo
	}
	return c.Name
}

// ValidCategoryID reports whether id names a known category.
func ValidCategoryID(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
