package models

import "time"

// Recipe is the central entity. Ingredient amounts live on the owned
// IngredientRecipe rows, which are replaced wholesale on update and removed
// together with the recipe.
type Recipe struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	AuthorID    uint               `json:"author_id" gorm:"not null;index"`
	Author      *User              `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name        string             `json:"name" gorm:"type:varchar(200)" validate:"required,max=200"`
	Image       string             `json:"image"` // stored filename under the media dir
	Text        string             `json:"text" validate:"required"`
	CookingTime int                `json:"cooking_time"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []IngredientRecipe `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `json:"-"`
}

// IngredientRecipe is the recipe-to-ingredient association row carrying the
// quantity. Identity is the (recipe, ingredient) pair.
type IngredientRecipe struct {
	RecipeID     uint        `json:"-" gorm:"primaryKey;autoIncrement:false"`
	IngredientID uint        `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Ingredient   *Ingredient `json:"-" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	Amount       int         `json:"amount"`
}

// Favorite marks a recipe as saved by a user. At most one row per
// (user, recipe) pair.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *Recipe   `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
}

// ShoppingCart marks a recipe as queued for the user's shopping list export.
// Same shape and constraints as Favorite, different table.
type ShoppingCart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *Recipe   `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
}
