package models

import "time"

// User represents an account on the platform.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(150)" validate:"required,max=150"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(254)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6,max=150"` // bcrypt hash, never serialized
	FirstName string    `json:"first_name" gorm:"type:varchar(150)" validate:"required,max=150"`
	LastName  string    `json:"last_name" gorm:"type:varchar(150)" validate:"required,max=150"`
	CreatedAt time.Time `json:"-"`
}

// Subscription links a follower (User) to an author whose recipes they follow.
// The composite unique index serializes concurrent duplicate subscribes; the
// check constraint forbids self-subscription at the storage level.
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_author;check:chk_no_self_subscribe,user_id <> author_id"`
	AuthorID  uint      `json:"author_id" gorm:"not null;uniqueIndex:idx_user_author"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
}
