package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/afternote/internal/model"
	"github.com/xxxsen/afternote/internal/pkg/response"
	"github.com/xxxsen/afternote/internal/service"
)

type ExamHandler struct {
	exams *service.ExamService
}

func NewExamHandler(exams *service.ExamService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

type examCreateRequest struct {
	FolderID   string               `json:"folder_id"`
	Title      string               `json:"title"`
	Subject    string               `json:"subject"`
	Difficulty string               `json:"difficulty"`
	Count      int                  `json:"count"`
	Content    string               `json:"content"`
	Questions  []model.QuizQuestion `json:"questions"`
}

type examUpdateRequest struct {
	FolderID   *string               `json:"folder_id"`
	Title      *string               `json:"title"`
	Subject    *string               `json:"subject"`
	Difficulty *string               `json:"difficulty"`
	Questions  *[]model.QuizQuestion `json:"questions"`
}

type examSubmitRequest struct {
	Answers []int `json:"answers"`
}

func (h *ExamHandler) Create(c *gin.Context) {
	var req examCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	exam, err := h.exams.Create(c.Request.Context(), getUserID(c), service.ExamCreateInput{
		FolderID:   req.FolderID,
		Title:      req.Title,
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Count:      req.Count,
		Content:    req.Content,
		Questions:  req.Questions,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, exam)
}

func (h *ExamHandler) List(c *gin.Context) {
	exams, err := h.exams.List(c.Request.Context(), getUserID(c), c.Query("folder_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, exams)
}

func (h *ExamHandler) Get(c *gin.Context) {
	exam, err := h.exams.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, exam)
}

func (h *ExamHandler) Update(c *gin.Context) {
	var req examUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	exam, err := h.exams.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.ExamUpdateInput{
		FolderID:   req.FolderID,
		Title:      req.Title,
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Questions:  req.Questions,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, exam)
}

func (h *ExamHandler) Delete(c *gin.Context) {
	if err := h.exams.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}

func (h *ExamHandler) Submit(c *gin.Context) {
	var req examSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	result, err := h.exams.Submit(c.Request.Context(), getUserID(c), c.Param("id"), req.Answers)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
