package handlers

import (
	"net/http"

	"quiz-api/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		UserName string `json:"userName" binding:"required"`
		FullName string `json:"fullName"`
		Email    string `json:"email" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.Service.CreateUser(c.Request.Context(), req.UserName, req.FullName, req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.Service.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req struct {
		UserName string `json:"userName"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.UserName != "" {
		fields["userName"] = req.UserName
	}
	if req.FullName != "" {
		fields["fullName"] = req.FullName
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}
	if err := h.Service.UpdateUser(c.Request.Context(), c.Param("userId"), fields); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Service.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
