package routes

import (
	"fmt"
	"net/http"
	"testing"

	"blogapi/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFetchPostRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	token := env.bearerFor(t, author.Id)

	res := env.do(t, http.MethodPost, "/api/v1/posts", token, gin.H{
		"title":    "Hello",
		"content":  "World!!",
		"isHidden": false,
	})
	require.Equal(t, http.StatusOK, res.Code)
	created := decodePost(t, res)
	assert.Equal(t, author.Id, created.AuthorId)

	fetched := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%v", created.Id), token, nil)
	require.Equal(t, http.StatusOK, fetched.Code)
	post := decodePost(t, fetched)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World!!", post.Content)
	assert.False(t, post.IsHidden)
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	token := env.bearerFor(t, author.Id)

	for name, body := range map[string]gin.H{
		"missing title":    {"content": "World!!"},
		"short title":      {"title": "ab", "content": "World!!"},
		"missing content":  {"title": "Hello"},
		"oversize content": {"title": "Hello", "content": string(make([]byte, 301))},
	} {
		res := env.do(t, http.MethodPost, "/api/v1/posts", token, body)
		assert.Equal(t, http.StatusBadRequest, res.Code, name)
		assert.Equal(t, "VALIDATION_FAILED", decodeErrCode(t, res), name)
	}
}

func TestHiddenPostMaskedAsNotFound(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	other := env.seedUser(t, "alice", "b@b.com", "secret", model.UserTypeBlogger)
	admin := env.seedUser(t, "root", "root@example.com", "secret", model.UserTypeAdmin)
	hidden := env.seedPost(t, author.Id, "Secret", "Hush", true)

	path := fmt.Sprintf("/api/v1/posts/%v", hidden.Id)

	res := env.do(t, http.MethodGet, path, env.bearerFor(t, author.Id), nil)
	assert.Equal(t, http.StatusOK, res.Code, "author sees own hidden post")

	res = env.do(t, http.MethodGet, path, env.bearerFor(t, admin.Id), nil)
	assert.Equal(t, http.StatusOK, res.Code, "admin sees hidden post")

	unauthorized := env.do(t, http.MethodGet, path, env.bearerFor(t, other.Id), nil)
	assert.Equal(t, http.StatusNotFound, unauthorized.Code)
	assert.Equal(t, "POST_NOT_FOUND", decodeErrCode(t, unauthorized))

	// Hidden-and-unauthorized is byte-identical to does-not-exist.
	absent := env.do(t, http.MethodGet, "/api/v1/posts/424242", env.bearerFor(t, other.Id), nil)
	assert.Equal(t, http.StatusNotFound, absent.Code)
	assert.Equal(t, unauthorized.Body.String(), absent.Body.String())
}

func TestListMyPostsIncludesHidden(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	env.seedPost(t, author.Id, "Visible", "Content", false)
	env.seedPost(t, author.Id, "Hidden", "Content", true)

	res := env.do(t, http.MethodGet, "/api/v1/posts", env.bearerFor(t, author.Id), nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, decodePosts(t, res), 2)
}

func TestListUserPostsFiltersHidden(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	other := env.seedUser(t, "alice", "b@b.com", "secret", model.UserTypeBlogger)
	admin := env.seedUser(t, "root", "root@example.com", "secret", model.UserTypeAdmin)
	env.seedPost(t, author.Id, "Visible", "Content", false)
	env.seedPost(t, author.Id, "Hidden", "Content", true)

	path := fmt.Sprintf("/api/v1/posts/user/%v", author.Id)

	res := env.do(t, http.MethodGet, path, env.bearerFor(t, other.Id), nil)
	require.Equal(t, http.StatusOK, res.Code)
	posts := decodePosts(t, res)
	require.Len(t, posts, 1)
	assert.Equal(t, "Visible", posts[0].Title)

	res = env.do(t, http.MethodGet, path, env.bearerFor(t, author.Id), nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, decodePosts(t, res), 2)

	res = env.do(t, http.MethodGet, path, env.bearerFor(t, admin.Id), nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, decodePosts(t, res), 2)
}

func TestUpdatePostPartial(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	post := env.seedPost(t, author.Id, "Hello", "World!!", false)

	res := env.do(t, http.MethodPut, "/api/v1/posts", env.bearerFor(t, author.Id), gin.H{
		"id":    post.Id,
		"title": "Updated",
	})
	require.Equal(t, http.StatusOK, res.Code)

	updated := decodePost(t, res)
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, "World!!", updated.Content, "omitted fields keep previous values")
	assert.False(t, updated.IsHidden)
}

func TestUpdatePostByNonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	other := env.seedUser(t, "alice", "b@b.com", "secret", model.UserTypeBlogger)
	post := env.seedPost(t, author.Id, "Hello", "World!!", false)

	res := env.do(t, http.MethodPut, "/api/v1/posts", env.bearerFor(t, other.Id), gin.H{
		"id":    post.Id,
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "AUTH_FORBIDDEN", decodeErrCode(t, res))

	// The post is untouched, not silently zero-row updated.
	fetched := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%v", post.Id), env.bearerFor(t, author.Id), nil)
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.Equal(t, "Hello", decodePost(t, fetched).Title)
}

func TestUpdatePostByAdmin(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	admin := env.seedUser(t, "root", "root@example.com", "secret", model.UserTypeAdmin)
	post := env.seedPost(t, author.Id, "Hello", "World!!", false)

	res := env.do(t, http.MethodPut, "/api/v1/posts", env.bearerFor(t, admin.Id), gin.H{
		"id":       post.Id,
		"isHidden": true,
	})
	require.Equal(t, http.StatusOK, res.Code)
	assert.True(t, decodePost(t, res).IsHidden)
}

func TestUpdateMissingPostNotFound(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)

	res := env.do(t, http.MethodPut, "/api/v1/posts", env.bearerFor(t, author.Id), gin.H{
		"id":    424242,
		"title": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "POST_NOT_FOUND", decodeErrCode(t, res))
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)
	other := env.seedUser(t, "alice", "b@b.com", "secret", model.UserTypeBlogger)
	admin := env.seedUser(t, "root", "root@example.com", "secret", model.UserTypeAdmin)

	post := env.seedPost(t, author.Id, "Hello", "World!!", false)
	path := fmt.Sprintf("/api/v1/posts/%v", post.Id)

	res := env.do(t, http.MethodDelete, path, env.bearerFor(t, other.Id), nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "AUTH_FORBIDDEN", decodeErrCode(t, res))

	res = env.do(t, http.MethodDelete, path, env.bearerFor(t, author.Id), nil)
	assert.Equal(t, http.StatusNoContent, res.Code)

	// Deleting again is a clean not-found, never a server fault.
	for i := 0; i < 2; i++ {
		res = env.do(t, http.MethodDelete, path, env.bearerFor(t, author.Id), nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "POST_NOT_FOUND", decodeErrCode(t, res))
	}

	adminVictim := env.seedPost(t, author.Id, "Another", "Post!!", false)
	res = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%v", adminVictim.Id), env.bearerFor(t, admin.Id), nil)
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestPostRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/posts"},
		{http.MethodPost, "/api/v1/posts"},
		{http.MethodPut, "/api/v1/posts"},
		{http.MethodGet, "/api/v1/posts/1"},
		{http.MethodDelete, "/api/v1/posts/1"},
		{http.MethodGet, "/api/v1/posts/user/1"},
	} {
		res := env.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, "%v %v", tc.method, tc.path)
		assert.Equal(t, "AUTH_MISSING", decodeErrCode(t, res), "%v %v", tc.method, tc.path)
	}
}

func TestMalformedPostId(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "bob", "a@a.com", "secret", model.UserTypeBlogger)

	res := env.do(t, http.MethodGet, "/api/v1/posts/not-a-number", env.bearerFor(t, author.Id), nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "ID_MALFORMED", decodeErrCode(t, res))
}
