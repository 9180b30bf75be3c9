package model

import "time"

type UserType string

const (
	UserTypeAdmin   UserType = "ADMIN"
	UserTypeBlogger UserType = "BLOGGER"
)

type User struct {
	Id           int64     `db:"id,omitempty" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Type         UserType  `db:"type" json:"type"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserListing is the projection returned by the user listing. Id is only
// selected for admin callers and omitted from JSON otherwise.
type UserListing struct {
	Id    int64  `db:"id,omitempty" json:"id,omitempty"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
