package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/pkg/response"
	"github.com/xxxsen/afternote/internal/service"
)

type AIHandler struct {
	study *service.StudyService
}

func NewAIHandler(study *service.StudyService) *AIHandler {
	return &AIHandler{study: study}
}

type artifactRequest struct {
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
	Question   string `json:"question"`
}

type aiExplainRequest struct {
	Concept string `json:"concept"`
	Level   string `json:"level"`
}

type aiChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
	Level   string `json:"level"`
}

// Artifact serves one on-demand stage over a note or document. The body is
// optional; an empty body selects the stage defaults.
func (h *AIHandler) Artifact(source service.Source, kind enrich.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req artifactRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, "invalid request")
			return
		}
		id := c.Param("id")
		value, err := h.study.GenerateArtifact(c.Request.Context(), getUserID(c), source, id, kind, enrich.Params{
			Count:      req.Count,
			Difficulty: req.Difficulty,
			Question:   req.Question,
		})
		if err != nil {
			handleError(c, err)
			return
		}
		switch kind {
		case enrich.KindFlashcards:
			response.Success(c, gin.H{"flashcards": value})
		case enrich.KindDocumentQA:
			response.Success(c, gin.H{"answer": value, string(source) + "_id": id})
		default:
			response.Success(c, value)
		}
	}
}

func (h *AIHandler) Explain(c *gin.Context) {
	var req aiExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	explanation, err := h.study.Explain(c.Request.Context(), getUserID(c), req.Concept, req.Level)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"concept":     req.Concept,
		"level":       enrich.NormalizeLevel(req.Level),
		"explanation": explanation,
	})
}

func (h *AIHandler) Chat(c *gin.Context) {
	var req aiChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	answer, err := h.study.Chat(c.Request.Context(), getUserID(c), req.Message, req.Level, req.Context)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"response": answer, "context": req.Context})
}
