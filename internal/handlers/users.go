package handlers

import (
	"errors"
	"net/http"

	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserCreateRequest is the sign-up payload.
type UserCreateRequest struct {
	Email    *string `json:"email" binding:"required" example:"a@x.com"`
	Password *string `json:"password" binding:"required" example:"p"`
}

// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body      UserCreateRequest  true  "email and password"
// @Success      200    {object}  models.User
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /users/ [post]
func (h *Handler) createUser(c *gin.Context) {
	var input UserCreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "user_bad_request_body", err)
		return
	}

	services, ok := h.svc(c)
	if !ok {
		return
	}

	u, err := services.CreateUser(c.Request.Context(), *input.Email, *input.Password)
	switch {
	case errors.Is(err, service.ErrEmailRegistered):
		h.log.Infow("user_email_registered", "email", *input.Email)
		abortDetail(c, http.StatusBadRequest, errEmailRegistered)
		return
	case errors.Is(err, service.ErrInvalidPassword):
		h.badRequest(c, "user_invalid_password", err)
		return
	case err != nil:
		h.internalError(c, "user_create_failed", err, "email", *input.Email)
		return
	}

	c.JSON(http.StatusOK, u)
}
