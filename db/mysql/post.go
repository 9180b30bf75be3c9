package mysql

import (
	"context"

	db2 "blogapi/db"
	"blogapi/model"

	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *db2.CreatePost) (*model.Post, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("title", "content", "is_hidden", "author_id").
		Values(req.Title, req.Content, req.IsHidden, req.AuthorId).
		ExecContext(ctx)
	if err != nil {
		return nil, err
	}
	postId, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return pdb.GetPostById(ctx, postId)
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := pdb.sess.SQL().
		Select("*").
		From("post").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (pdb *PostDB) GetPostsByAuthor(ctx context.Context, authorId int64, includeHidden bool) ([]*model.Post, error) {
	selector := pdb.sess.SQL().
		Select("*").
		From("post").
		Where("author_id = ?", authorId)
	if !includeHidden {
		selector = selector.And("is_hidden = ?", false)
	}
	var posts []*model.Post
	return posts, selector.
		OrderBy("id").
		IteratorContext(ctx).
		All(&posts)
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, req *db2.UpdatePost) (*model.Post, error) {
	sets := make([]interface{}, 0, 6)
	if req.Title != nil {
		sets = append(sets, "title", *req.Title)
	}
	if req.Content != nil {
		sets = append(sets, "content", *req.Content)
	}
	if req.IsHidden != nil {
		sets = append(sets, "is_hidden", *req.IsHidden)
	}
	if len(sets) > 0 {
		if _, err := pdb.sess.SQL().
			Update("post").
			Set(sets...).
			Where("id = ?", id).
			ExecContext(ctx); err != nil {
			return nil, err
		}
	}
	return pdb.GetPostById(ctx, id)
}

func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	_, err := pdb.sess.SQL().
		DeleteFrom("post").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}
