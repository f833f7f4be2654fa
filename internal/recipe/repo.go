package recipe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// rowQuerier is the subset of pgxpool.Pool the repository needs.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository reads curated recipes from Postgres. Ingredients are stored as a
// JSONB array so the multiset order survives round-trips untouched.
type Repository struct {
	db rowQuerier
}

func NewRepository(db rowQuerier) *Repository {
	return &Repository{db: db}
}

const baseSelect = `SELECT name, category, page, ingredients, glass, method, garnish, ice FROM recipes`

// ListByCategoryPage returns recipes for one study page, in insertion order.
func (r *Repository) ListByCategoryPage(ctx context.Context, category string, page int) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, baseSelect+` WHERE category = $1 AND page = $2 ORDER BY id`, category, page)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()
	return scanRecipes(rows)
}

// ListByCategory returns all pages of a category, page order ascending, for
// the full exam scope.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, baseSelect+` WHERE category = $1 ORDER BY page, id`, category)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func scanRecipes(rows pgx.Rows) ([]Recipe, error) {
	var recipes []Recipe
	for rows.Next() {
		var (
			rec            Recipe
			ingredientsRaw []byte
		)
		if err := rows.Scan(&rec.Name, &rec.Category, &rec.Page, &ingredientsRaw, &rec.Glass, &rec.Method, &rec.Garnish, &rec.Ice); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if len(ingredientsRaw) > 0 {
			if err := json.Unmarshal(ingredientsRaw, &rec.Ingredients); err != nil {
				return nil, fmt.Errorf("decode ingredients for %q: %w", rec.Name, err)
			}
		}
		if rec.Ingredients == nil {
			rec.Ingredients = []IngredientSpec{}
		}
		if rec.Category == "" {
			rec.Category = DefaultCategory
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return recipes, nil
}
