package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/middleware"
	"github.com/xxxsen/afternote/internal/service"
)

type RouterDeps struct {
	Folders   *FolderHandler
	Notes     *NoteHandler
	Documents *DocumentHandler
	MindMaps  *MindMapHandler
	Exams     *ExamHandler
	AI        *AIHandler
	JWTSecret []byte
}

var artifactKinds = []enrich.Kind{
	enrich.KindFlashcards,
	enrich.KindQuiz,
	enrich.KindMindMap,
	enrich.KindDocumentQA,
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.POST("/folders", deps.Folders.Create)
	authGroup.GET("/folders", deps.Folders.List)
	authGroup.GET("/folders/:id", deps.Folders.Get)
	authGroup.PUT("/folders/:id", deps.Folders.Update)
	authGroup.DELETE("/folders/:id", deps.Folders.Delete)

	authGroup.POST("/notes", deps.Notes.Create)
	authGroup.GET("/notes", deps.Notes.List)
	authGroup.GET("/notes/:id", deps.Notes.Get)
	authGroup.PUT("/notes/:id", deps.Notes.Update)
	authGroup.DELETE("/notes/:id", deps.Notes.Delete)

	authGroup.POST("/documents/upload", deps.Documents.Upload)
	authGroup.GET("/documents", deps.Documents.List)
	authGroup.GET("/documents/:id", deps.Documents.Get)
	authGroup.PUT("/documents/:id", deps.Documents.Update)
	authGroup.DELETE("/documents/:id", deps.Documents.Delete)
	authGroup.GET("/documents/:id/file", deps.Documents.File)

	for _, kind := range artifactKinds {
		authGroup.POST("/notes/:id/"+string(kind), deps.AI.Artifact(service.SourceNote, kind))
		authGroup.POST("/documents/:id/"+string(kind), deps.AI.Artifact(service.SourceDocument, kind))
	}

	authGroup.POST("/mindmaps/generate", deps.MindMaps.Generate)
	authGroup.POST("/mindmaps", deps.MindMaps.Create)
	authGroup.GET("/mindmaps", deps.MindMaps.List)
	authGroup.GET("/mindmaps/:id", deps.MindMaps.Get)
	authGroup.PUT("/mindmaps/:id", deps.MindMaps.Update)
	authGroup.DELETE("/mindmaps/:id", deps.MindMaps.Delete)

	authGroup.POST("/exams", deps.Exams.Create)
	authGroup.GET("/exams", deps.Exams.List)
	authGroup.GET("/exams/:id", deps.Exams.Get)
	authGroup.PUT("/exams/:id", deps.Exams.Update)
	authGroup.DELETE("/exams/:id", deps.Exams.Delete)
	authGroup.POST("/exams/:id/submit", deps.Exams.Submit)

	authGroup.POST("/ai/explain", deps.AI.Explain)
	authGroup.POST("/ai/chat", deps.AI.Chat)
}
