package routes

import (
	"strings"

	"blogapi/auth"
	"blogapi/db"
	"blogapi/middleware"
	"blogapi/model"
	"blogapi/util"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	db     db.Database
	tokens *auth.TokenService
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, tokens *auth.TokenService) {
	routes := userRoutes{database, tokens}
	users := group.Group("/users")
	users.POST("/register", util.HandlerWrapper(routes.register, &util.HandlerOpts{}))
	users.POST("/login", util.HandlerWrapper(routes.login, &util.HandlerOpts{}))

	authed := users.Group("", middleware.TokenAuth(database, tokens))
	authed.GET("", util.HandlerWrapper(routes.listUsers, &util.HandlerOpts{}))
	authed.POST("", middleware.RequireAdmin(), util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
}

type registerUserReq struct {
	Name     string `json:"name" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3"`
}

type createUserReq struct {
	registerUserReq
	Type model.UserType `json:"type" binding:"omitempty,oneof=ADMIN BLOGGER"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// register creates a BLOGGER account. Self-registration can never grant a
// role.
func (ur *userRoutes) register(c *gin.Context) (interface{}, *util.HTTPError) {
	var req registerUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return nil, ur.createUserRecord(c, &req, model.UserTypeBlogger)
}

// createUser is the admin-only variant: any role may be assigned.
func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	userType := req.Type
	if userType == "" {
		userType = model.UserTypeBlogger
	}
	return nil, ur.createUserRecord(c, &req.registerUserReq, userType)
}

func (ur *userRoutes) createUserRecord(c *gin.Context, req *registerUserReq, userType model.UserType) *util.HTTPError {
	similar, err := ur.db.GetSimilarUser(c, req.Name, req.Email)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if similar != nil {
		if similar.Name == req.Name {
			return util.BadRequestErr("NAME_ALREADY_USED")
		}
		return util.BadRequestErr("EMAIL_ALREADY_USED")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return util.BuildInternalHTTPErr(err)
	}

	if _, err := ur.db.CreateUser(c, &db.CreateUser{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Type:         userType,
	}); err != nil {
		// The pre-check and the insert are not one transaction; a racing
		// registration lands here as a unique-key violation.
		if db.IsDupKeyErr(err) {
			if strings.Contains(db.GetDupKey(err), "name") {
				return util.BadRequestErr("NAME_ALREADY_USED")
			}
			return util.BadRequestErr("EMAIL_ALREADY_USED")
		}
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

func (ur *userRoutes) login(c *gin.Context) (interface{}, *util.HTTPError) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}

	user, err := ur.db.GetUserByEmail(c, req.Email)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	// Identical failure for unknown email and wrong password.
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, util.UnauthorizedErr("EMAIL_OR_PASSWORD_INCORRECT")
	}

	token, err := ur.tokens.Issue(user.Id)
	if err != nil {
		return nil, util.BuildInternalHTTPErr(err)
	}
	return gin.H{"token": token}, nil
}

func (ur *userRoutes) listUsers(c *gin.Context) (interface{}, *util.HTTPError) {
	me := middleware.MustGetAuth(c).User
	users, err := ur.db.GetUsers(c, &db.UsersQuery{
		IncludeAdmins: me.IsAdmin(),
		IncludeIds:    me.IsAdmin(),
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if users == nil {
		users = []*model.UserListing{}
	}
	return users, nil
}
