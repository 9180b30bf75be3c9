package routes

import (
	"blogapi/auth"
	"blogapi/db"
	"blogapi/middleware"
	"blogapi/model"
	"blogapi/util"

	"github.com/gin-gonic/gin"
)

type postRoutes struct {
	db db.Database
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, tokens *auth.TokenService) {
	routes := postRoutes{database}
	posts := group.Group("/posts", middleware.TokenAuth(database, tokens))
	posts.GET("", util.HandlerWrapper(routes.listMyPosts, &util.HandlerOpts{}))
	posts.POST("", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	posts.PUT("", util.HandlerWrapper(routes.updatePost, &util.HandlerOpts{}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.DELETE("/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	posts.GET("/user/:authorId", util.HandlerWrapper(routes.getPostsByAuthor, &util.HandlerOpts{}))
}

type createPostReq struct {
	Title    string `json:"title" binding:"required,min=3,max=30"`
	Content  string `json:"content" binding:"required,min=3,max=300"`
	IsHidden bool   `json:"isHidden"`
}

type updatePostReq struct {
	Id       int64   `json:"id" binding:"required"`
	Title    *string `json:"title" binding:"omitempty,min=3,max=30"`
	Content  *string `json:"content" binding:"omitempty,min=3,max=300"`
	IsHidden *bool   `json:"isHidden"`
}

// listMyPosts returns the caller's own posts, hidden ones included.
func (pr *postRoutes) listMyPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	me := middleware.MustGetAuth(c).User
	posts, err := pr.db.GetPostsByAuthor(c, me.Id, true)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nonNilPosts(posts), nil
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	me := middleware.MustGetAuth(c).User
	post, err := pr.db.CreatePost(c, &db.CreatePost{
		Title:    req.Title,
		Content:  req.Content,
		IsHidden: req.IsHidden,
		AuthorId: me.Id,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return post, nil
}

// getPostById masks hidden posts the caller may not see as not-found, so
// the response never reveals whether such a post exists.
func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	me := middleware.MustGetAuth(c).User
	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil || !me.CanViewPost(post) {
		return nil, util.NotFoundErr("POST_NOT_FOUND")
	}
	return post, nil
}

// updatePost applies a partial update. Only supplied fields change. The
// ownership check happens before the write, never as a silent row filter.
func (pr *postRoutes) updatePost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req updatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	me := middleware.MustGetAuth(c).User

	post, err := pr.db.GetPostById(c, req.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.NotFoundErr("POST_NOT_FOUND")
	}
	if !me.CanModifyPost(post) {
		return nil, util.ForbiddenErr("AUTH_FORBIDDEN")
	}

	updated, err := pr.db.UpdatePost(c, req.Id, &db.UpdatePost{
		Title:    req.Title,
		Content:  req.Content,
		IsHidden: req.IsHidden,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if updated == nil {
		return nil, util.NotFoundErr("POST_NOT_FOUND")
	}
	return updated, nil
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	me := middleware.MustGetAuth(c).User

	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.NotFoundErr("POST_NOT_FOUND")
	}
	if !me.CanModifyPost(post) {
		return nil, util.ForbiddenErr("AUTH_FORBIDDEN")
	}

	if err := pr.db.DeletePost(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (pr *postRoutes) getPostsByAuthor(c *gin.Context) (interface{}, *util.HTTPError) {
	authorId, httpErr := util.ParseId(c.Param("authorId"))
	if httpErr != nil {
		return nil, httpErr
	}
	me := middleware.MustGetAuth(c).User
	posts, err := pr.db.GetPostsByAuthor(c, authorId, me.CanSeeHiddenOf(authorId))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nonNilPosts(posts), nil
}

// nonNilPosts keeps empty listings rendering as [] instead of null.
func nonNilPosts(posts []*model.Post) []*model.Post {
	if posts == nil {
		return []*model.Post{}
	}
	return posts
}
