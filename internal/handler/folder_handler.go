package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/afternote/internal/pkg/response"
	"github.com/xxxsen/afternote/internal/service"
)

type FolderHandler struct {
	folders *service.FolderService
}

func NewFolderHandler(folders *service.FolderService) *FolderHandler {
	return &FolderHandler{folders: folders}
}

type folderCreateRequest struct {
	ParentID    string `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type folderUpdateRequest struct {
	ParentID    *string `json:"parent_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *FolderHandler) Create(c *gin.Context) {
	var req folderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	folder, err := h.folders.Create(c.Request.Context(), getUserID(c), service.FolderCreateInput{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folder)
}

func (h *FolderHandler) List(c *gin.Context) {
	folders, err := h.folders.List(c.Request.Context(), getUserID(c), c.Query("parent_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folders)
}

func (h *FolderHandler) Get(c *gin.Context) {
	folder, err := h.folders.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folder)
}

func (h *FolderHandler) Update(c *gin.Context) {
	var req folderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	folder, err := h.folders.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.FolderUpdateInput{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folder)
}

// Delete detaches everything filed under the folder before removing it.
func (h *FolderHandler) Delete(c *gin.Context) {
	if err := h.folders.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}
