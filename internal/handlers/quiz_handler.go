package handlers

import (
	"net/http"

	"quiz-api/internal/event"
	"quiz-api/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service   *service.QuizService
	Publisher *event.Publisher
}

func NewQuizHandler(s *service.QuizService, publisher *event.Publisher) *QuizHandler {
	return &QuizHandler{Service: s, Publisher: publisher}
}

func (h *QuizHandler) publish(eventType string, payload interface{}) {
	if h.Publisher != nil {
		_ = h.Publisher.Publish(eventType, payload)
	}
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quiz, err := h.Service.CreateQuiz(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publish("quiz.created", gin.H{"quizId": quiz.ID})
	c.JSON(http.StatusCreated, gin.H{"message": "Quiz created successfully", "quiz": quiz})
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.Service.GetQuiz(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.Service.ListVisibleQuizzes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateQuiz(c.Request.Context(), c.Param("quizId"), req.Title, req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz updated successfully"})
}

func (h *QuizHandler) UpdateQuizVisibility(c *gin.Context) {
	var req struct {
		Visible *bool `json:"visible" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.SetQuizVisibility(c.Request.Context(), c.Param("quizId"), *req.Visible); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz visibility updated"})
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.Param("quizId")
	if err := h.Service.DeleteQuiz(c.Request.Context(), quizID); err != nil {
		respondError(c, err)
		return
	}
	h.publish("quiz.deleted", gin.H{"quizId": quizID})
	c.Status(http.StatusNoContent)
}
