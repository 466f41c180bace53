package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/service"
)

// AnswerHandler 處理學生答題的請求
type AnswerHandler struct {
	answerService *service.AnswerService
}

// NewAnswerHandler 創建一個新的 AnswerHandler 實例
func NewAnswerHandler(answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// SubmitAnswer 處理學生對一道題目的作答
func (h *AnswerHandler) SubmitAnswer(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的題目ID"})
		return
	}

	// 從上下文中獲取學生 ID
	studentID, exists := c.Get("studentID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	var input struct {
		CorrectOptionIDs []uint `json:"correct_option_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.answerService.SubmitAnswer(studentID.(uint), uint(questionID), input.CorrectOptionIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到題目"})
		case errors.Is(err, service.ErrStudentNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "找不到學生"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "記錄作答失敗"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
