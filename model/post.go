package model

import "time"

type Post struct {
	Id        int64     `db:"id,omitempty" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	IsHidden  bool      `db:"is_hidden" json:"isHidden"`
	AuthorId  int64     `db:"author_id" json:"authorId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
