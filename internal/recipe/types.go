package recipe

// DefaultCategory is assumed when a stored recipe carries no category tag.
const DefaultCategory = "classics"

// IngredientSpec is one required pour: ingredient plus the house quantity.
// A recipe may list the same ingredient twice at different quantities, so the
// ingredient list is a multiset, never collapsed by name.
type IngredientSpec struct {
	Ingredient string `json:"ingredient"`
	Quantity   string `json:"quantity"`
}

// Recipe is the canonical correct specification for one cocktail.
// Immutable for the duration of a session once loaded.
type Recipe struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Page        int              `json:"page"`
	Ingredients []IngredientSpec `json:"ingredients"`
	Glass       string           `json:"glass"`
	Method      string           `json:"method"`
	Garnish     string           `json:"garnish"`
	Ice         string           `json:"ice"`
}

// SlotCount is the number of ingredient answer slots the recipe demands.
// Order of the list carries no grading meaning; only its length matters here.
func (r Recipe) SlotCount() int {
	return len(r.Ingredients)
}
