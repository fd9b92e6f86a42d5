package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/afternote/internal/pkg/response"
	"github.com/xxxsen/afternote/internal/service"
)

type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type noteCreateRequest struct {
	FolderID string `json:"folder_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type noteUpdateRequest struct {
	FolderID *string `json:"folder_id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req noteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.Title == "" {
		badRequest(c, "title required")
		return
	}
	note, err := h.notes.Create(c.Request.Context(), getUserID(c), service.NoteCreateInput{
		FolderID: req.FolderID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	notes, err := h.notes.List(c.Request.Context(), getUserID(c), c.Query("folder_id"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, notes)
}

func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req noteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	note, err := h.notes.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.NoteUpdateInput{
		FolderID: req.FolderID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}
