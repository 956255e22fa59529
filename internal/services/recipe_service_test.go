package services_test

import (
	"fmt"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/models"
	"foodgram/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type recipeServiceMocks struct {
	recipes     *MockRecipeRepository
	tags        *MockTagRepository
	ingredients *MockIngredientRepository
	favorites   *MockFavoriteRepository
	cart        *MockShoppingCartRepository
	subs        *MockSubscriptionRepository
	events      *MockEventPublisher
}

func testConfig() config.Config {
	return config.Config{
		PageSize:       6,
		MinCookingTime: 1,
		MaxCookingTime: 32000,
		MinAmount:      1,
		MaxAmount:      32000,
	}
}

func newRecipeService() (*services.RecipeService, *recipeServiceMocks) {
	m := &recipeServiceMocks{
		recipes:     new(MockRecipeRepository),
		tags:        new(MockTagRepository),
		ingredients: new(MockIngredientRepository),
		favorites:   new(MockFavoriteRepository),
		cart:        new(MockShoppingCartRepository),
		subs:        new(MockSubscriptionRepository),
		events:      new(MockEventPublisher),
	}
	service := services.NewRecipeService(
		m.recipes, m.tags, m.ingredients,
		m.favorites, m.cart, m.subs,
		passthroughImageStore{}, m.events, testConfig(),
	)
	return service, m
}

func TestRecipeService_ShoppingListSumsSharedIngredients(t *testing.T) {
	service, m := newRecipeService()

	salt := &models.Ingredient{ID: 1, Name: "salt", MeasurementUnit: "g"}
	pepper := &models.Ingredient{ID: 2, Name: "pepper", MeasurementUnit: "g"}
	rows := []models.IngredientRecipe{
		{RecipeID: 1, IngredientID: 1, Ingredient: salt, Amount: 10},
		{RecipeID: 1, IngredientID: 2, Ingredient: pepper, Amount: 3},
		{RecipeID: 2, IngredientID: 1, Ingredient: salt, Amount: 5},
	}
	m.cart.On("IngredientRows", uint(7)).Return(rows, nil).Once()

	list, err := service.ShoppingList(7)

	assert.NoError(t, err)
	assert.Equal(t, "Shopping list\n1. Salt (g) - 15\n2. Pepper (g) - 3\n", list)
	m.cart.AssertExpectations(t)
}

func TestRecipeService_ShoppingListEmptyCart(t *testing.T) {
	service, m := newRecipeService()

	m.cart.On("IngredientRows", uint(7)).Return([]models.IngredientRecipe{}, nil).Once()

	list, err := service.ShoppingList(7)

	assert.NoError(t, err)
	assert.Equal(t, "Shopping list\n", list)
	m.cart.AssertExpectations(t)
}

func TestRecipeService_CreateRecipeValidation(t *testing.T) {
	valid := dto.RecipeRequest{
		Name:        "Omelette",
		Text:        "Whisk and fry.",
		Image:       "omelette.png",
		CookingTime: 5,
		Ingredients: []dto.RecipeIngredientInput{{ID: 1, Amount: 2}},
		Tags:        []uint{1},
	}

	t.Run("cooking time below minimum", func(t *testing.T) {
		service, _ := newRecipeService()
		req := valid
		req.CookingTime = 0
		_, err := service.CreateRecipe(1, req)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "cooking_time")
	})

	t.Run("empty ingredient list", func(t *testing.T) {
		service, _ := newRecipeService()
		req := valid
		req.Ingredients = nil
		_, err := service.CreateRecipe(1, req)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "ingredients")
	})

	t.Run("empty tag list", func(t *testing.T) {
		service, _ := newRecipeService()
		req := valid
		req.Tags = nil
		_, err := service.CreateRecipe(1, req)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "tags")
	})

	t.Run("duplicate ingredient ids", func(t *testing.T) {
		service, _ := newRecipeService()
		req := valid
		req.Ingredients = []dto.RecipeIngredientInput{{ID: 1, Amount: 2}, {ID: 1, Amount: 3}}
		_, err := service.CreateRecipe(1, req)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "repeat")
	})

	t.Run("duplicate tag ids", func(t *testing.T) {
		service, _ := newRecipeService()
		req := valid
		req.Tags = []uint{1, 1}
		_, err := service.CreateRecipe(1, req)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "repeat")
	})

	t.Run("unknown ingredient id is named", func(t *testing.T) {
		service, m := newRecipeService()
		req := valid
		req.Ingredients = []dto.RecipeIngredientInput{{ID: 1, Amount: 2}, {ID: 99, Amount: 1}}
		m.ingredients.On("GetByIDs", []uint{1, 99}).
			Return([]models.Ingredient{{ID: 1, Name: "salt", MeasurementUnit: "g"}}, nil).Once()
		_, err := service.CreateRecipe(1, req)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "id=99")
		m.ingredients.AssertExpectations(t)
	})

	t.Run("amount below minimum", func(t *testing.T) {
		service, _ := newRecipeService()
		req := valid
		req.Ingredients = []dto.RecipeIngredientInput{{ID: 1, Amount: 0}}
		_, err := service.CreateRecipe(1, req)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "amount")
	})
}

func TestRecipeService_CreateRecipe(t *testing.T) {
	service, m := newRecipeService()

	author := &models.User{ID: 3, Username: "chef", Email: "chef@example.com"}
	req := dto.RecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "pancakes.png",
		CookingTime: 20,
		Ingredients: []dto.RecipeIngredientInput{{ID: 1, Amount: 200}, {ID: 2, Amount: 3}},
		Tags:        []uint{1},
	}

	m.ingredients.On("GetByIDs", []uint{1, 2}).Return([]models.Ingredient{
		{ID: 1, Name: "flour", MeasurementUnit: "g"},
		{ID: 2, Name: "eggs", MeasurementUnit: "pcs"},
	}, nil).Once()
	m.tags.On("GetByIDs", []uint{1}).Return([]models.Tag{
		{ID: 1, Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"},
	}, nil).Once()
	m.recipes.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recipe := args.Get(0).(*models.Recipe)
			recipe.ID = 7

			// The persisted rows must reproduce exactly the submitted pairs.
			rows := args.Get(1).([]models.IngredientRecipe)
			assert.Len(t, rows, 2)
			assert.Equal(t, uint(1), rows[0].IngredientID)
			assert.Equal(t, 200, rows[0].Amount)
			assert.Equal(t, uint(2), rows[1].IngredientID)
			assert.Equal(t, 3, rows[1].Amount)
		}).Return(nil).Once()
	m.events.On("Publish", "recipe.created", mock.Anything).Return(nil).Once()
	m.recipes.On("GetByID", uint(7)).Return(&models.Recipe{
		ID:          7,
		AuthorID:    3,
		Author:      author,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        []models.Tag{{ID: 1, Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"}},
		Ingredients: []models.IngredientRecipe{
			{RecipeID: 7, IngredientID: 1, Ingredient: &models.Ingredient{ID: 1, Name: "flour", MeasurementUnit: "g"}, Amount: 200},
			{RecipeID: 7, IngredientID: 2, Ingredient: &models.Ingredient{ID: 2, Name: "eggs", MeasurementUnit: "pcs"}, Amount: 3},
		},
	}, nil).Once()
	m.favorites.On("Exists", uint(3), uint(7)).Return(false, nil).Once()
	m.cart.On("Exists", uint(3), uint(7)).Return(false, nil).Once()

	resp, err := service.CreateRecipe(3, req)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "Pancakes", resp.Name)
	assert.Equal(t, 20, resp.CookingTime)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.Len(t, resp.Ingredients, 2)
	assert.Equal(t, "flour", resp.Ingredients[0].Name)
	m.recipes.AssertExpectations(t)
	m.events.AssertExpectations(t)
}

func TestRecipeService_UpdateRecipeOnlyByAuthor(t *testing.T) {
	service, m := newRecipeService()

	m.recipes.On("GetByID", uint(5)).Return(&models.Recipe{ID: 5, AuthorID: 2}, nil).Once()

	_, err := service.UpdateRecipe(1, 5, dto.RecipeRequest{
		Name:        "Hijacked",
		Text:        "x",
		Image:       "x.png",
		CookingTime: 5,
		Ingredients: []dto.RecipeIngredientInput{{ID: 1, Amount: 1}},
		Tags:        []uint{1},
	})

	assert.ErrorIs(t, err, services.ErrForbidden)
	m.recipes.AssertExpectations(t)
}

func TestRecipeService_AddFavorite(t *testing.T) {
	t.Run("recipe does not exist", func(t *testing.T) {
		service, m := newRecipeService()
		m.recipes.On("Exists", uint(9)).Return(false, nil).Once()

		_, err := service.AddFavorite(1, 9)

		assert.ErrorIs(t, err, services.ErrValidation)
		m.recipes.AssertExpectations(t)
	})

	t.Run("duplicate add is a conflict", func(t *testing.T) {
		service, m := newRecipeService()
		m.recipes.On("Exists", uint(9)).Return(true, nil).Once()
		m.favorites.On("Exists", uint(1), uint(9)).Return(true, nil).Once()

		_, err := service.AddFavorite(1, 9)

		assert.ErrorIs(t, err, services.ErrConflict)
		m.favorites.AssertExpectations(t)
	})

	t.Run("concurrent duplicate maps to the same conflict", func(t *testing.T) {
		service, m := newRecipeService()
		m.recipes.On("Exists", uint(9)).Return(true, nil).Once()
		m.favorites.On("Exists", uint(1), uint(9)).Return(false, nil).Once()
		m.favorites.On("Add", uint(1), uint(9)).
			Return(fmt.Errorf("failed to add favorite: %w", gorm.ErrDuplicatedKey)).Once()

		_, err := service.AddFavorite(1, 9)

		assert.ErrorIs(t, err, services.ErrConflict)
		m.favorites.AssertExpectations(t)
	})

	t.Run("success returns the abridged view", func(t *testing.T) {
		service, m := newRecipeService()
		m.recipes.On("Exists", uint(9)).Return(true, nil).Once()
		m.favorites.On("Exists", uint(1), uint(9)).Return(false, nil).Once()
		m.favorites.On("Add", uint(1), uint(9)).Return(nil).Once()
		m.recipes.On("GetByID", uint(9)).Return(&models.Recipe{
			ID: 9, Name: "Soup", Image: "soup.png", CookingTime: 40,
		}, nil).Once()

		view, err := service.AddFavorite(1, 9)

		assert.NoError(t, err)
		assert.Equal(t, uint(9), view.ID)
		assert.Equal(t, "Soup", view.Name)
		assert.Equal(t, 40, view.CookingTime)
		m.favorites.AssertExpectations(t)
	})
}

func TestRecipeService_RemoveFavorite(t *testing.T) {
	t.Run("absent pair is a validation error", func(t *testing.T) {
		service, m := newRecipeService()
		m.recipes.On("Exists", uint(9)).Return(true, nil).Once()
		m.favorites.On("Remove", uint(1), uint(9)).Return(false, nil).Once()

		err := service.RemoveFavorite(1, 9)

		assert.ErrorIs(t, err, services.ErrValidation)
		m.favorites.AssertExpectations(t)
	})

	t.Run("missing recipe is not found", func(t *testing.T) {
		service, m := newRecipeService()
		m.recipes.On("Exists", uint(9)).Return(false, nil).Once()

		err := service.RemoveFavorite(1, 9)

		assert.ErrorIs(t, err, services.ErrNotFound)
		m.recipes.AssertExpectations(t)
	})

	t.Run("remove then re-add succeeds", func(t *testing.T) {
		service, m := newRecipeService()
		m.recipes.On("Exists", uint(9)).Return(true, nil)
		m.favorites.On("Remove", uint(1), uint(9)).Return(true, nil).Once()
		m.favorites.On("Exists", uint(1), uint(9)).Return(false, nil).Once()
		m.favorites.On("Add", uint(1), uint(9)).Return(nil).Once()
		m.recipes.On("GetByID", uint(9)).Return(&models.Recipe{ID: 9, Name: "Soup"}, nil).Once()

		assert.NoError(t, service.RemoveFavorite(1, 9))
		_, err := service.AddFavorite(1, 9)
		assert.NoError(t, err)
		m.favorites.AssertExpectations(t)
	})
}

func TestRecipeService_ListRecipesAnonymousFlagFailsClosed(t *testing.T) {
	service, m := newRecipeService()

	// No repository expectations: the anonymous viewer with a personal flag
	// must short-circuit to an empty page.
	recipes, count, err := service.ListRecipes(
		services.RecipeListFilter{IsFavorited: true}, 0, 0, 6)

	assert.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Equal(t, int64(0), count)
	m.recipes.AssertExpectations(t)
}
