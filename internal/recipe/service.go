package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNoRecipes is returned when a requested category/page has nothing loaded.
// Callers must surface this instead of starting an empty quiz.
var ErrNoRecipes = errors.New("no recipes for selection")

// CatalogCache defines cache behavior (implemented by the Redis-backed Cache).
type CatalogCache interface {
	GetPage(ctx context.Context, category string, page int) ([]Recipe, error)
	SetPage(ctx context.Context, category string, page int, recipes []Recipe) error
	GetCategory(ctx context.Context, category string) ([]Recipe, error)
	SetCategory(ctx context.Context, category string, recipes []Recipe) error
}

type store interface {
	ListByCategoryPage(ctx context.Context, category string, page int) ([]Recipe, error)
	ListByCategory(ctx context.Context, category string) ([]Recipe, error)
}

// Service is the data provider facade: curated DB behind a catalog cache.
type Service struct {
	repo            store
	cache           CatalogCache
	defaultCategory string
	logger          zerolog.Logger
}

func NewService(repo store, cache CatalogCache, defaultCategory string, logger zerolog.Logger) *Service {
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}
	return &Service{
		repo:            repo,
		cache:           cache,
		defaultCategory: defaultCategory,
		logger:          logger.With().Str("component", "recipe_service").Logger(),
	}
}

// Page returns the recipes of one study page.
func (s *Service) Page(ctx context.Context, category string, page int) ([]Recipe, error) {
	category = s.normalize(category)

	if s.cache != nil {
		if cached, err := s.cache.GetPage(ctx, category, page); err == nil && cached != nil {
			return cached, nil
		}
	}

	recipes, err := s.repo.ListByCategoryPage(ctx, category, page)
	if err != nil {
		return nil, fmt.Errorf("load page %s/%d: %w", category, page, err)
	}
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, category, page, recipes); err != nil {
			s.logger.Warn().Err(err).Str("category", category).Int("page", page).Msg("catalog cache write failed")
		}
	}
	return recipes, nil
}

// Category returns all pages of a category flattened in page order, the scope
// used by the full exam.
func (s *Service) Category(ctx context.Context, category string) ([]Recipe, error) {
	category = s.normalize(category)

	if s.cache != nil {
		if cached, err := s.cache.GetCategory(ctx, category); err == nil && cached != nil {
			return cached, nil
		}
	}

	recipes, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load category %s: %w", category, err)
	}
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}

	if s.cache != nil {
		if err := s.cache.SetCategory(ctx, category, recipes); err != nil {
			s.logger.Warn().Err(err).Str("category", category).Msg("catalog cache write failed")
		}
	}
	return recipes, nil
}

func (s *Service) normalize(category string) string {
	if category == "" {
		return s.defaultCategory
	}
	return category
}
