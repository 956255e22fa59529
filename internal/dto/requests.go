package dto

// SignUpRequest is the payload for user registration.
type SignUpRequest struct {
	Username  string `json:"username" validate:"required,max=150,username_chars"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=6,max=150"`
}

// LoginRequest is the payload for token issuance.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RecipeIngredientInput references an existing ingredient by id with the
// amount used by the recipe.
type RecipeIngredientInput struct {
	ID     uint `json:"id" validate:"required"`
	Amount int  `json:"amount" validate:"required,min=1"`
}

// RecipeRequest is the payload for recipe create and update. Image is either
// a base64 data URI to be decoded and stored, or an already-stored filename
// (echoed back unchanged on update).
type RecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Text        string                  `json:"text" validate:"required"`
	Image       string                  `json:"image" validate:"required"`
	CookingTime int                     `json:"cooking_time"`
	Ingredients []RecipeIngredientInput `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []uint                  `json:"tags" validate:"required,min=1"`
}
