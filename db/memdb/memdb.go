// Package memdb provides an in-memory Database implementation used by
// tests. It mirrors the MySQL store's observable behavior, including
// duplicate-key errors on the user table's unique columns.
package memdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	db2 "blogapi/db"
	"blogapi/model"

	"github.com/go-sql-driver/mysql"
)

type MemDB struct {
	mu         sync.Mutex
	users      map[int64]*model.User
	posts      map[int64]*model.Post
	nextUserId int64
	nextPostId int64
}

func New() *MemDB {
	return &MemDB{
		users:      make(map[int64]*model.User),
		posts:      make(map[int64]*model.Post),
		nextUserId: 1,
		nextPostId: 1,
	}
}

func (m *MemDB) Close() error {
	return nil
}

func dupKeyErr(key string) error {
	return &mysql.MySQLError{
		Number:  1062,
		Message: fmt.Sprintf("Duplicate entry for key '%v'", key),
	}
}

func (m *MemDB) CreateUser(ctx context.Context, req *db2.CreateUser) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Name == req.Name {
			return 0, dupKeyErr("uq_user_name")
		}
		if user.Email == req.Email {
			return 0, dupKeyErr("uq_user_email")
		}
	}
	user := &model.User{
		Id:           m.nextUserId,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		Type:         req.Type,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.Id] = user
	m.nextUserId++
	return user.Id, nil
}

func (m *MemDB) GetUserById(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *MemDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemDB) GetSimilarUser(ctx context.Context, name string, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Name matches win over email matches, like the OR query against the
	// real store when both collide on a single row; when two distinct rows
	// match, any of them is a valid answer.
	var match *model.User
	for _, user := range m.users {
		if user.Name == name {
			copied := *user
			return &copied, nil
		}
		if user.Email == email {
			match = user
		}
	}
	if match == nil {
		return nil, nil
	}
	copied := *match
	return &copied, nil
}

func (m *MemDB) GetUsers(ctx context.Context, query *db2.UsersQuery) ([]*model.UserListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	listings := make([]*model.UserListing, 0, len(m.users))
	for id := int64(1); id < m.nextUserId; id++ {
		user, ok := m.users[id]
		if !ok {
			continue
		}
		if !query.IncludeAdmins && user.Type == model.UserTypeAdmin {
			continue
		}
		listing := &model.UserListing{
			Name:  user.Name,
			Email: user.Email,
		}
		if query.IncludeIds {
			listing.Id = user.Id
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (m *MemDB) CreatePost(ctx context.Context, req *db2.CreatePost) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	post := &model.Post{
		Id:        m.nextPostId,
		Title:     req.Title,
		Content:   req.Content,
		IsHidden:  req.IsHidden,
		AuthorId:  req.AuthorId,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.posts[post.Id] = post
	m.nextPostId++
	copied := *post
	return &copied, nil
}

func (m *MemDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *MemDB) GetPostsByAuthor(ctx context.Context, authorId int64, includeHidden bool) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := make([]*model.Post, 0)
	for id := int64(1); id < m.nextPostId; id++ {
		post, ok := m.posts[id]
		if !ok || post.AuthorId != authorId {
			continue
		}
		if post.IsHidden && !includeHidden {
			continue
		}
		copied := *post
		posts = append(posts, &copied)
	}
	return posts, nil
}

func (m *MemDB) UpdatePost(ctx context.Context, id int64, req *db2.UpdatePost) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsHidden != nil {
		post.IsHidden = *req.IsHidden
	}
	post.UpdatedAt = time.Now().UTC()
	copied := *post
	return &copied, nil
}

func (m *MemDB) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	return nil
}
