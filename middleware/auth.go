package middleware

import (
	"strings"

	"blogapi/auth"
	"blogapi/db"
	"blogapi/model"
	"blogapi/util"

	"github.com/gin-gonic/gin"
)

const authKey = "auth"

// Auth is the request-scoped authenticated identity: the raw bearer token
// and the user it resolved to. Set once by TokenAuth, read-only afterward.
type Auth struct {
	Token string
	User  *model.User
}

// TokenAuth resolves the Authorization header to a persisted user and
// attaches the identity to the request context. Exactly one primary-key
// lookup on success.
func TokenAuth(users db.UserDatabase, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWith(c, util.UnauthorizedErr("AUTH_MISSING"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if !strings.EqualFold(parts[0], "bearer") {
			abortWith(c, util.UnauthorizedErr("AUTH_WRONG_TYPE"))
			return
		}
		if len(parts) < 2 || parts[1] == "" {
			abortWith(c, util.UnauthorizedErr("AUTH_TOKEN_MISSING"))
			return
		}
		token := parts[1]

		userId, err := tokens.Verify(token)
		if err != nil {
			abortWith(c, util.UnauthorizedErr("AUTH_TOKEN_INVALID"))
			return
		}

		user, err := users.GetUserById(c, userId)
		if err != nil {
			abortWith(c, util.BuildDbHTTPErr(err))
			return
		}
		if user == nil {
			// The token may have outlived the user it was issued for.
			abortWith(c, util.UnauthorizedErr("AUTH_TOKEN_INVALID"))
			return
		}

		c.Set(authKey, &Auth{Token: token, User: user})
	}
}

// RequireAdmin permits continuation only for admin users. Must be mounted
// after TokenAuth; it assumes the identity is already resolved.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !MustGetAuth(c).User.IsAdmin() {
			abortWith(c, util.ForbiddenErr("AUTH_FORBIDDEN"))
			return
		}
	}
}

// MustGetAuth returns the identity attached by TokenAuth. Panics if called
// on a route that is not behind TokenAuth.
func MustGetAuth(c *gin.Context) *Auth {
	a, _ := c.Get(authKey)
	return a.(*Auth)
}

func abortWith(c *gin.Context, err *util.HTTPError) {
	util.HandleHTTPErrorRes(c, err)
	c.Abort()
}
