package models

// Ingredient is a catalogue entry; recipes reference it through
// IngredientRecipe rows that carry the amount.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"index;type:varchar(200)" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(200)" validate:"required,max=200"`
}
