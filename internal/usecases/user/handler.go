package user

import (
	"errors"
	"net/http"

	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"
	"github.com/duarte-dev/birthday-notification-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	useCase UserUseCase
}

func NewUserHandler(useCase UserUseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

func (h *UserHandler) Create(c *gin.Context) {
	var input CreateUserInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	user, err := h.useCase.Create(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err, input.Email)
		return
	}

	c.JSON(http.StatusCreated, toOutput(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var input UpdateUserInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	user, err := h.useCase.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.renderError(c, err, c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, toOutput(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err, c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) renderError(c *gin.Context, err error, subject string) {
	switch {
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, store.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	default:
		logger.L().Error("Unexpected error handling user request",
			zap.String("subject", subject),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
	}
}
