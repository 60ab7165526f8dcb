package mealplan

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"golang.org/x/exp/slices"
	"mealmaster.app/planner/internal/access"
	"mealmaster.app/planner/internal/catalog"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/exceptions"
	"mealmaster.app/planner/internal/validation"
)

const DEFAULT_SERVINGS = 1.0

type RecipeResolver interface {
	ResolveRecipes(ctx context.Context, recipeIds []string) (map[string]catalog.Recipe, error)
}

type Service struct {
	Entries data.MealPlanRepository
	Recipes RecipeResolver
}

func NewService(entries data.MealPlanRepository, recipes RecipeResolver) *Service {
	return &Service{
		Entries: entries,
		Recipes: recipes,
	}
}

// _populate embeds each entry's recipe. Entries pointing at a deleted recipe
// keep a nil recipe rather than failing the whole listing.
func (s *Service) _populate(ctx context.Context, items []data.MealPlanDTO) ([]Entry, error) {
	recipeIds := make([]string, len(items))
	for i, item := range items {
		recipeIds[i] = item.RecipeId
	}
	recipes, err := s.Recipes.ResolveRecipes(ctx, recipeIds)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = NewEntry(item)
		if recipe, ok := recipes[item.RecipeId]; ok {
			entries[i].Recipe = &recipe
		}
	}
	return entries, nil
}

// ListEntries returns the user's entries ordered by date then meal type. The
// range only applies when both bounds are given.
func (s *Service) ListEntries(ctx context.Context, userId string, startDate string, endDate string) ([]Entry, error) {
	if err := validation.Struct("date range", DateRange{StartDate: startDate, EndDate: endDate}); err != nil {
		return nil, err
	}
	params := data.QueryParams{}
	if startDate != "" && endDate != "" {
		params.RangeStart = startDate
		params.RangeEnd = endDate
	}
	if params.HasRange() && startDate > endDate {
		return []Entry{}, nil
	}
	items, err := data.Drain(params, func(qp data.QueryParams) (data.QueryResults[data.MealPlanDTO], error) {
		return s.Entries.ListByUser(ctx, userId, qp)
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b data.MealPlanDTO) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		if c := strings.Compare(a.MealType, b.MealType); c != 0 {
			return c
		}
		return a.CreateTime.Compare(b.CreateTime)
	})
	return s._populate(ctx, items)
}

// _validate checks the entry as it will be stored. The recipe lookup only
// runs when the recipe reference is new and well formed.
func (s *Service) _validate(ctx context.Context, input EntryInput, recipeChanged bool) error {
	fields, err := validation.Fields(input)
	if err != nil {
		return err
	}
	if recipeChanged && !slices.Contains(fields, "recipeId") {
		found, err := s.Recipes.ResolveRecipes(ctx, []string{*input.RecipeId})
		if err != nil {
			return err
		}
		if _, ok := found[*input.RecipeId]; !ok {
			fields = append(fields, "recipeId")
		}
	}
	if len(fields) > 0 {
		return exceptions.InvalidFields("meal plan entry", fields...)
	}
	return nil
}

func (s *Service) _single(ctx context.Context, item data.MealPlanDTO) (Entry, error) {
	entries, err := s._populate(ctx, []data.MealPlanDTO{item})
	if err != nil {
		return Entry{}, err
	}
	return entries[0], nil
}

func (s *Service) CreateEntry(ctx context.Context, userId string, input EntryInput) (Entry, error) {
	if input.Servings == nil {
		input.Servings = aws.Float64(DEFAULT_SERVINGS)
	}
	if err := s._validate(ctx, input, input.RecipeId != nil); err != nil {
		return Entry{}, err
	}
	created, err := s.Entries.Create(ctx, data.GLOBAL_ACCOUNT, data.MealPlanInputDTO{
		UserId:   aws.String(userId),
		Date:     input.Date,
		MealType: input.MealType,
		RecipeId: input.RecipeId,
		Servings: input.Servings,
	})
	if err != nil {
		return Entry{}, err
	}
	return s._single(ctx, created)
}

// UpdateEntry checks ownership before the payload is looked at.
func (s *Service) UpdateEntry(ctx context.Context, userId string, entryId string, input EntryInput) (Entry, error) {
	existing, err := s.Entries.Get(ctx, data.GLOBAL_ACCOUNT, entryId)
	if err != nil {
		return Entry{}, err
	}
	if err := access.AssertOwnerOf(existing, userId); err != nil {
		return Entry{}, err
	}
	if err := s._validate(ctx, input.Merge(existing), input.RecipeId != nil); err != nil {
		return Entry{}, err
	}
	updated, err := s.Entries.Update(ctx, data.GLOBAL_ACCOUNT, entryId, data.MealPlanInputDTO{
		Date:     input.Date,
		MealType: input.MealType,
		RecipeId: input.RecipeId,
		Servings: input.Servings,
	})
	if err != nil {
		return Entry{}, err
	}
	return s._single(ctx, updated)
}

func (s *Service) DeleteEntry(ctx context.Context, userId string, entryId string) error {
	existing, err := s.Entries.Get(ctx, data.GLOBAL_ACCOUNT, entryId)
	if err != nil {
		return err
	}
	if err := access.AssertOwnerOf(existing, userId); err != nil {
		return err
	}
	return s.Entries.Delete(ctx, data.GLOBAL_ACCOUNT, entryId)
}
