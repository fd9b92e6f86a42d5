package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/ai"
	"github.com/xxxsen/afternote/internal/config"
	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/filestore"
	"github.com/xxxsen/afternote/internal/handler"
	"github.com/xxxsen/afternote/internal/middleware"
	"github.com/xxxsen/afternote/internal/repo"
	"github.com/xxxsen/afternote/internal/service"
)

func newGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	provider, err := ai.NewProvider(cfg.Provider, cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("init ai provider: %w", err)
	}
	gen := ai.NewGenerator(provider, cfg.Model)
	return ai.NewCachedGenerator(gen, cfg.CacheSize, time.Duration(cfg.CacheTTLMinutes)*time.Minute), nil
}

func runServer(cfg *config.Config, handle *db.Handle) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_driver", handle.Driver()),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model),
	)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	gen, err := newGenerator(cfg.AI)
	if err != nil {
		return err
	}
	orch := enrich.NewOrchestrator(gen)
	maxInput := cfg.AI.MaxInputChars

	noteRepo := repo.NewNoteRepo(handle)
	docRepo := repo.NewDocumentRepo(handle)
	folderRepo := repo.NewFolderRepo(handle)
	mindmapRepo := repo.NewMindMapRepo(handle)
	examRepo := repo.NewExamRepo(handle)

	deps := handler.RouterDeps{
		Folders:   handler.NewFolderHandler(service.NewFolderService(folderRepo, noteRepo, docRepo, mindmapRepo, examRepo)),
		Notes:     handler.NewNoteHandler(service.NewNoteService(noteRepo, folderRepo, orch, maxInput)),
		Documents: handler.NewDocumentHandler(service.NewDocumentService(docRepo, folderRepo, store, orch, maxInput), cfg.Upload.MaxFileSize),
		MindMaps:  handler.NewMindMapHandler(service.NewMindMapService(mindmapRepo, folderRepo, orch, maxInput)),
		Exams:     handler.NewExamHandler(service.NewExamService(examRepo, folderRepo, orch, maxInput)),
		AI:        handler.NewAIHandler(service.NewStudyService(noteRepo, docRepo, orch, maxInput)),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORS),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
