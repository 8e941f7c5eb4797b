package handlers

import (
	"net/http"

	"quiz-api/internal/event"
	"quiz-api/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Service       *service.AttemptService
	AnswerService *service.AnswerService
	Publisher     *event.Publisher
}

func NewAttemptHandler(s *service.AttemptService, as *service.AnswerService, publisher *event.Publisher) *AttemptHandler {
	return &AttemptHandler{Service: s, AnswerService: as, Publisher: publisher}
}

func (h *AttemptHandler) publish(eventType string, payload interface{}) {
	if h.Publisher != nil {
		_ = h.Publisher.Publish(eventType, payload)
	}
}

func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	userID := c.Param("userId")
	quizID := c.Param("quizId")

	attempt, err := h.Service.StartAttempt(c.Request.Context(), userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publish("attempt.started", gin.H{"userId": userID, "quizId": quizID, "attemptId": attempt.ID})
	c.JSON(http.StatusCreated, gin.H{
		"message":       "User attempt created successfully",
		"userAttemptId": attempt.ID,
	})
}

func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	attempt, err := h.Service.GetAttempt(c.Request.Context(), c.Param("userId"), c.Param("quizId"), c.Param("attemptId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

func (h *AttemptHandler) GetCurrentQuestion(c *gin.Context) {
	question, err := h.Service.GetCurrentQuestion(c.Request.Context(), c.Param("userId"), c.Param("quizId"), c.Param("attemptId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		QuestionID string `json:"questionId" binding:"required"`
		UserAnswer string `json:"userAnswer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attemptID := c.Param("attemptId")
	result, err := h.Service.SubmitAnswer(c.Request.Context(), c.Param("userId"), c.Param("quizId"), attemptID, req.QuestionID, req.UserAnswer)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publish("attempt.answer_submitted", gin.H{"attemptId": attemptID, "questionId": req.QuestionID, "status": result.Verdict})
	c.JSON(http.StatusCreated, gin.H{
		"message":       "User answer created successfully",
		"status":        result.Verdict,
		"correctAnswer": result.CorrectAnswer,
	})
}

func (h *AttemptHandler) Advance(c *gin.Context) {
	attemptID := c.Param("attemptId")
	result, err := h.Service.Advance(c.Request.Context(), c.Param("userId"), c.Param("quizId"), attemptID)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Completed {
		h.publish("attempt.completed", gin.H{"attemptId": attemptID})
		c.JSON(http.StatusOK, gin.H{
			"completed":    true,
			"dateFinished": result.DateFinished,
		})
		return
	}
	h.publish("attempt.advanced", gin.H{"attemptId": attemptID, "questionId": result.Question.QuestionID})
	c.JSON(http.StatusOK, result.Question)
}

func (h *AttemptHandler) GetSummary(c *gin.Context) {
	summary, err := h.Service.GetAttemptSummary(c.Request.Context(), c.Param("userId"), c.Param("quizId"), c.Param("attemptId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AttemptHandler) ListAnswers(c *gin.Context) {
	answers, err := h.AnswerService.ListAnswers(c.Request.Context(), c.Param("userId"), c.Param("quizId"), c.Param("attemptId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": answers})
}
