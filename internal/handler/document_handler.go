package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/pkg/errcode"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/pkg/response"
	"github.com/xxxsen/afternote/internal/service"
)

// multipartOverhead leaves room for the form framing around the file part.
const multipartOverhead = 1 << 20

type DocumentHandler struct {
	documents   *service.DocumentService
	maxFileSize int64
}

func NewDocumentHandler(documents *service.DocumentService, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{documents: documents, maxFileSize: maxFileSize}
}

type documentUpdateRequest struct {
	FolderID      *string `json:"folder_id"`
	Title         *string `json:"title"`
	ExtractedText *string `json:"extracted_text"`
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	if h.maxFileSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)
	}
	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		h.tooLarge(c)
		return
	}
	declared := file.Header.Get("Content-Type")
	if _, ok := service.AllowedExtension(declared); !ok {
		handleError(c, fmt.Errorf("declared type %q: %w", declared, appErr.ErrUnsupportedType))
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	data, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	doc, err := h.documents.Upload(c.Request.Context(), getUserID(c), service.UploadInput{
		FileName:     file.Filename,
		DeclaredType: declared,
		FolderID:     c.PostForm("folder_id"),
		Data:         data,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) tooLarge(c *gin.Context) {
	response.Error(c, errcode.ErrTooLarge, "file exceeds "+formatSize(h.maxFileSize))
}

func formatSize(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	switch {
	case n >= mb:
		return strconv.FormatInt(n/mb, 10) + "MB"
	case n >= kb:
		return strconv.FormatInt(n/kb, 10) + "KB"
	default:
		return strconv.FormatInt(max(n, 0), 10) + "B"
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	docs, err := h.documents.List(c.Request.Context(), getUserID(c), c.Query("folder_id"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Update(c *gin.Context) {
	var req documentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	doc, err := h.documents.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.DocumentUpdateInput{
		FolderID:      req.FolderID,
		Title:         req.Title,
		ExtractedText: req.ExtractedText,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}

// File streams the stored bytes back with the type declared at upload.
func (h *DocumentHandler) File(c *gin.Context) {
	doc, rc, err := h.documents.OpenFile(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	defer rc.Close()
	c.Header("Content-Type", doc.MimeType)
	c.Header("Content-Disposition", "inline; filename*=UTF-8''"+url.PathEscape(doc.Title))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logutil.GetLogger(c.Request.Context()).Warn("stream document failed",
			zap.String("document_id", doc.ID), zap.Error(err))
	}
}
