package db

import (
	"context"

	"blogapi/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	PostDatabase
	UserDatabase
	Close() error
}

type CreateUser struct {
	Name         string
	Email        string
	PasswordHash string
	Type         model.UserType
}

// UsersQuery controls the listing projection. Non-admin callers get neither
// ids nor admin accounts.
type UsersQuery struct {
	IncludeAdmins bool
	IncludeIds    bool
}

type UserDatabase interface {
	// CreateUser inserts the user and returns its generated id.
	CreateUser(ctx context.Context, req *CreateUser) (userId int64, err error)
	// GetUserById returns (nil, nil) when no user exists with the id.
	GetUserById(ctx context.Context, id int64) (*model.User, error)
	// GetUserByEmail returns (nil, nil) when no user exists with the email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// GetSimilarUser returns any user matching the name or the email,
	// (nil, nil) if neither is taken.
	GetSimilarUser(ctx context.Context, name string, email string) (*model.User, error)
	GetUsers(ctx context.Context, query *UsersQuery) ([]*model.UserListing, error)
}

type CreatePost struct {
	Title    string
	Content  string
	IsHidden bool
	AuthorId int64
}

// UpdatePost carries a partial update. Nil fields keep their stored values.
type UpdatePost struct {
	Title    *string
	Content  *string
	IsHidden *bool
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (*model.Post, error)
	// GetPostById returns (nil, nil) when no post exists with the id.
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorId int64, includeHidden bool) ([]*model.Post, error)
	// UpdatePost applies the non-nil fields and returns the updated post.
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) error
}
