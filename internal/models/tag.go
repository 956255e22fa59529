package models

// Tag labels recipes (e.g. "breakfast"). Name, color and slug are each
// globally unique.
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;type:varchar(200)" validate:"required,max=200"`
	Color string `json:"color" gorm:"uniqueIndex;type:varchar(7)" validate:"required,hexcolor"`
	Slug  string `json:"slug" gorm:"uniqueIndex;type:varchar(200)" validate:"required,max=200,tag_slug"`
}
