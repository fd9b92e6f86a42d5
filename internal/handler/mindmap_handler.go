package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/afternote/internal/model"
	"github.com/xxxsen/afternote/internal/pkg/response"
	"github.com/xxxsen/afternote/internal/service"
)

type MindMapHandler struct {
	mindmaps *service.MindMapService
}

func NewMindMapHandler(mindmaps *service.MindMapService) *MindMapHandler {
	return &MindMapHandler{mindmaps: mindmaps}
}

type mindMapGenerateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type mindMapCreateRequest struct {
	FolderID string             `json:"folder_id"`
	Title    string             `json:"title"`
	Content  string             `json:"content"`
	Data     *model.MindMapData `json:"data"`
}

type mindMapUpdateRequest struct {
	FolderID *string            `json:"folder_id"`
	Title    *string            `json:"title"`
	Content  *string            `json:"content"`
	Data     *model.MindMapData `json:"data"`
}

type mindMapGenerateResponse struct {
	Title string            `json:"title"`
	Data  model.MindMapData `json:"data"`
}

func (h *MindMapHandler) Generate(c *gin.Context) {
	var req mindMapGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	data, err := h.mindmaps.Generate(c.Request.Context(), getUserID(c), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, mindMapGenerateResponse{Title: req.Title, Data: data})
}

func (h *MindMapHandler) Create(c *gin.Context) {
	var req mindMapCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	mm, err := h.mindmaps.Create(c.Request.Context(), getUserID(c), service.MindMapCreateInput{
		FolderID: req.FolderID,
		Title:    req.Title,
		Content:  req.Content,
		Data:     req.Data,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, mm)
}

func (h *MindMapHandler) List(c *gin.Context) {
	mms, err := h.mindmaps.List(c.Request.Context(), getUserID(c), c.Query("folder_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, mms)
}

func (h *MindMapHandler) Get(c *gin.Context) {
	mm, err := h.mindmaps.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, mm)
}

func (h *MindMapHandler) Update(c *gin.Context) {
	var req mindMapUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	mm, err := h.mindmaps.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.MindMapUpdateInput{
		FolderID: req.FolderID,
		Title:    req.Title,
		Content:  req.Content,
		Data:     req.Data,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, mm)
}

func (h *MindMapHandler) Delete(c *gin.Context) {
	if err := h.mindmaps.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}
