package handlers

import (
	"errors"
	"net/http"

	"blog_api/internal/models"
	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// PostCreateRequest is the payload of a new post.
type PostCreateRequest struct {
	Title   *string `json:"title" binding:"required" example:"t"`
	Content *string `json:"content" binding:"required" example:"c"`
}

// PostUpdateRequest is a partial update; omitted fields keep their value.
type PostUpdateRequest struct {
	Title   *string `json:"title,omitempty" example:"new title"`
	Content *string `json:"content,omitempty" example:"new content"`
}

func (r PostUpdateRequest) patch() models.PostPatch {
	return models.PostPatch{Title: r.Title, Content: r.Content}
}

type userURI struct {
	UserID int `uri:"user_id" binding:"min=0"`
}

type postURI struct {
	UserID int `uri:"user_id" binding:"min=0"`
	PostID int `uri:"post_id" binding:"min=0"`
}

type windowQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=0"`
}

func (q windowQuery) window() service.Window {
	return service.Window{Skip: q.Skip, Limit: q.Limit}
}

// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                true  "owner id"
// @Param        input    body      PostCreateRequest  true  "title and content"
// @Success      200      {object}  models.Post
// @Failure      400      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /users/{user_id}/post/ [post]
func (h *Handler) createPost(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, "post_bad_request_path", err)
		return
	}
	var input PostCreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "post_bad_request_body", err)
		return
	}

	services, ok := h.svc(c)
	if !ok {
		return
	}

	p, err := services.CreatePost(c.Request.Context(), uri.UserID, service.PostInput{
		Title:   *input.Title,
		Content: *input.Content,
	})
	if err != nil {
		h.internalError(c, "post_create_failed", err, "user_id", uri.UserID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        skip   query     int  false  "rows to skip"  default(0)
// @Param        limit  query     int  false  "max rows"      default(100)
// @Success      200    {array}   models.Post
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /posts/ [get]
func (h *Handler) listPosts(c *gin.Context) {
	var q windowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "posts_bad_request_query", err)
		return
	}

	services, ok := h.svc(c)
	if !ok {
		return
	}

	posts, err := services.ListPosts(c.Request.Context(), q.window())
	if err != nil {
		h.internalError(c, "posts_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      List posts of a user
// @Tags         posts
// @Produce      json
// @Param        user_id  path      int  true   "owner id"
// @Param        skip     query     int  false  "rows to skip"  default(0)
// @Param        limit    query     int  false  "max rows"      default(100)
// @Success      200      {array}   models.Post
// @Failure      400      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /users/{user_id}/posts/ [get]
func (h *Handler) listUserPosts(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, "posts_bad_request_path", err)
		return
	}
	var q windowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "posts_bad_request_query", err)
		return
	}

	services, ok := h.svc(c)
	if !ok {
		return
	}

	posts, err := services.ListUserPosts(c.Request.Context(), uri.UserID, q.window())
	if err != nil {
		h.internalError(c, "posts_list_failed", err, "user_id", uri.UserID)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      Update post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                true  "owner id"
// @Param        post_id  path      int                true  "post id"
// @Param        input    body      PostUpdateRequest  true  "fields to change"
// @Success      200      {object}  models.Post
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /users/{user_id}/posts/{post_id} [put]
func (h *Handler) updatePost(c *gin.Context) {
	var uri postURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, "post_bad_request_path", err)
		return
	}
	var input PostUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "post_bad_request_body", err)
		return
	}

	services, ok := h.svc(c)
	if !ok {
		return
	}

	p, err := services.UpdatePost(c.Request.Context(), uri.UserID, uri.PostID, input.patch())
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		abortDetail(c, http.StatusNotFound, errPostNotFound)
		return
	case err != nil:
		h.internalError(c, "post_update_failed", err, "user_id", uri.UserID, "post_id", uri.PostID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Param        user_id  path      int  true  "owner id"
// @Param        post_id  path      int  true  "post id"
// @Success      200      {object}  models.Post
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /users/{user_id}/posts/{post_id} [delete]
func (h *Handler) deletePost(c *gin.Context) {
	var uri postURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, "post_bad_request_path", err)
		return
	}

	services, ok := h.svc(c)
	if !ok {
		return
	}

	p, err := services.DeletePost(c.Request.Context(), uri.UserID, uri.PostID)
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		abortDetail(c, http.StatusNotFound, errPostNotFound)
		return
	case err != nil:
		h.internalError(c, "post_delete_failed", err, "user_id", uri.UserID, "post_id", uri.PostID)
		return
	}
	c.JSON(http.StatusOK, p)
}
