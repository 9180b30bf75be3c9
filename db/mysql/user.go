package mysql

import (
	"context"

	db2 "blogapi/db"
	"blogapi/model"

	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, req *db2.CreateUser) (int64, error) {
	res, err := udb.sess.SQL().
		InsertInto("user").
		Columns("name", "email", "password_hash", "type").
		Values(req.Name, req.Email, req.PasswordHash, req.Type).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (udb *UserDB) GetUserById(ctx context.Context, id int64) (*model.User, error) {
	return udb.getUserWhere(ctx, "id = ?", id)
}

func (udb *UserDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return udb.getUserWhere(ctx, "email = ?", email)
}

func (udb *UserDB) GetSimilarUser(ctx context.Context, name string, email string) (*model.User, error) {
	return udb.getUserWhere(ctx, "name = ? OR email = ?", name, email)
}

func (udb *UserDB) getUserWhere(ctx context.Context, conds ...interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("user").
		Where(conds...).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (udb *UserDB) GetUsers(ctx context.Context, query *db2.UsersQuery) ([]*model.UserListing, error) {
	columns := []interface{}{"name", "email"}
	if query.IncludeIds {
		columns = append([]interface{}{"id"}, columns...)
	}
	selector := udb.sess.SQL().
		Select(columns...).
		From("user")
	if !query.IncludeAdmins {
		selector = selector.Where("type <> ?", model.UserTypeAdmin)
	}
	var users []*model.UserListing
	return users, selector.
		OrderBy("id").
		IteratorContext(ctx).
		All(&users)
}
