package catalog

import (
	"context"
	"errors"

	"golang.org/x/exp/slices"
	"mealmaster.app/planner/internal/access"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/exceptions"
)

// UserDirectory resolves creator ids to display names.
type UserDirectory interface {
	Get(ctx context.Context, accountId string, itemId string) (data.UserDTO, error)
}

type Service struct {
	Recipes data.RecipeRepository
	Users   UserDirectory
}

func NewService(recipes data.RecipeRepository, users UserDirectory) *Service {
	return &Service{
		Recipes: recipes,
		Users:   users,
	}
}

func _isNotFound(err error) bool {
	var notFound *exceptions.NotFoundError
	return errors.As(err, &notFound)
}

func (s *Service) _resolveCreators(ctx context.Context, recipes []Recipe) error {
	names := make(map[string]string)
	for i := range recipes {
		creator := recipes[i].CreatedBy
		if creator == nil {
			continue
		}
		name, ok := names[creator.Id]
		if !ok {
			user, err := s.Users.Get(ctx, data.GLOBAL_ACCOUNT, creator.Id)
			if err != nil && !_isNotFound(err) {
				return err
			}
			name = user.Name
			names[creator.Id] = name
		}
		creator.Name = name
	}
	return nil
}

func (s *Service) ListRecipes(ctx context.Context) ([]Recipe, error) {
	items, err := data.Drain(data.QueryParams{}, func(params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
		return s.Recipes.List(ctx, data.GLOBAL_ACCOUNT, params)
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b data.RecipeDTO) int {
		return a.CreateTime.Compare(b.CreateTime)
	})
	recipes := make([]Recipe, len(items))
	for i, item := range items {
		recipes[i] = NewRecipe(item)
	}
	if err := s._resolveCreators(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *Service) SearchRecipes(ctx context.Context, query string, filters Filters) ([]Recipe, error) {
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return Search(recipes, query, filters), nil
}

func (s *Service) _single(ctx context.Context, item data.RecipeDTO) (Recipe, error) {
	recipes := []Recipe{NewRecipe(item)}
	if err := s._resolveCreators(ctx, recipes); err != nil {
		return Recipe{}, err
	}
	return recipes[0], nil
}

func (s *Service) GetRecipe(ctx context.Context, recipeId string) (Recipe, error) {
	item, err := s.Recipes.Get(ctx, data.GLOBAL_ACCOUNT, recipeId)
	if err != nil {
		return Recipe{}, err
	}
	return s._single(ctx, item)
}

func (s *Service) CreateRecipe(ctx context.Context, input RecipeInput, creatorId string) (Recipe, error) {
	if err := input.Validate(); err != nil {
		return Recipe{}, err
	}
	created, err := s.Recipes.Create(ctx, data.GLOBAL_ACCOUNT, input.ToData(&creatorId))
	if err != nil {
		return Recipe{}, err
	}
	return s._single(ctx, created)
}

// UpdateRecipe checks ownership before looking at the payload at all.
func (s *Service) UpdateRecipe(ctx context.Context, recipeId string, patch RecipeInput, requesterId string) (Recipe, error) {
	existing, err := s.Recipes.Get(ctx, data.GLOBAL_ACCOUNT, recipeId)
	if err != nil {
		return Recipe{}, err
	}
	if err := access.AssertOwnerOf(existing, requesterId); err != nil {
		return Recipe{}, err
	}
	merged := NewRecipeInput(existing).Merge(patch)
	if err := merged.Validate(); err != nil {
		return Recipe{}, err
	}
	updated, err := s.Recipes.Update(ctx, data.GLOBAL_ACCOUNT, recipeId, merged.ToData(nil))
	if err != nil {
		return Recipe{}, err
	}
	return s._single(ctx, updated)
}

func (s *Service) DeleteRecipe(ctx context.Context, recipeId string, requesterId string) error {
	existing, err := s.Recipes.Get(ctx, data.GLOBAL_ACCOUNT, recipeId)
	if err != nil {
		return err
	}
	if err := access.AssertOwnerOf(existing, requesterId); err != nil {
		return err
	}
	return s.Recipes.Delete(ctx, data.GLOBAL_ACCOUNT, recipeId)
}

// ResolveRecipes reads all distinct ids in batches. Ids that no longer
// resolve are left out, so callers see a stale reference as a missing recipe.
func (s *Service) ResolveRecipes(ctx context.Context, recipeIds []string) (map[string]Recipe, error) {
	ids := make([]string, 0, len(recipeIds))
	for _, recipeId := range recipeIds {
		if recipeId != "" {
			ids = append(ids, recipeId)
		}
	}
	items, err := s.Recipes.BatchGet(ctx, data.GLOBAL_ACCOUNT, ids)
	if err != nil {
		return nil, err
	}
	resolved := make(map[string]Recipe, len(items))
	for _, item := range items {
		resolved[item.SK] = NewRecipe(item)
	}
	return resolved, nil
}
