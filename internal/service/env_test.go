package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/afternote/internal/ai"
	"github.com/xxxsen/afternote/internal/config"
	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/filestore"
	"github.com/xxxsen/afternote/internal/repo"
	"github.com/xxxsen/afternote/internal/testutil"
)

const testUser = "u1"

// recordingStore counts writes on top of a real local store.
type recordingStore struct {
	filestore.Store
	mu    sync.Mutex
	saves int
}

func (s *recordingStore) Save(ctx context.Context, key string, r io.ReadSeeker, size int64) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Store.Save(ctx, key, r, size)
}

func (s *recordingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type testEnv struct {
	store     *recordingStore
	notes     *NoteService
	documents *DocumentService
	folders   *FolderService
	mindmaps  *MindMapService
	exams     *ExamService
	study     *StudyService
	noteRepo  *repo.NoteRepo
	docRepo   *repo.DocumentRepo
}

func newTestEnv(t *testing.T, gen ai.IGenerator) *testEnv {
	t.Helper()
	h := testutil.OpenTestDB(t)
	local, err := filestore.New(config.FileStoreConfig{Type: "local", Data: map[string]interface{}{"dir": t.TempDir()}})
	require.NoError(t, err)
	store := &recordingStore{Store: local}

	noteRepo := repo.NewNoteRepo(h)
	docRepo := repo.NewDocumentRepo(h)
	folderRepo := repo.NewFolderRepo(h)
	mindmapRepo := repo.NewMindMapRepo(h)
	examRepo := repo.NewExamRepo(h)
	orch := enrich.NewOrchestrator(gen)
	return &testEnv{
		store:     store,
		notes:     NewNoteService(noteRepo, folderRepo, orch, 0),
		documents: NewDocumentService(docRepo, folderRepo, store, orch, 0),
		folders:   NewFolderService(folderRepo, noteRepo, docRepo, mindmapRepo, examRepo),
		mindmaps:  NewMindMapService(mindmapRepo, folderRepo, orch, 0),
		exams:     NewExamService(examRepo, folderRepo, orch, 0),
		study:     NewStudyService(noteRepo, docRepo, orch, 0),
		noteRepo:  noteRepo,
		docRepo:   docRepo,
	}
}

// stageGen answers by template, recognised from a phrase each prompt carries.
type stageGen struct {
	mu      sync.Mutex
	replies map[string]string
	prompts []string
}

func newStageGen(replies map[string]string) *stageGen {
	return &stageGen{replies: replies}
}

func (g *stageGen) Generate(ctx context.Context, p string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, p)
	g.mu.Unlock()
	for marker, reply := range g.replies {
		if strings.Contains(p, marker) {
			return reply, nil
		}
	}
	return "", errors.New("service unavailable")
}

func (g *stageGen) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func (g *stageGen) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

const (
	markSummary  = "Summarize the following"
	markConcepts = "key concepts"
	markFlash    = "flashcards from this content"
	markQuiz     = "multiple choice questions"
	markMindMap  = "mind map structure"
	markQA       = "Based on this document content"
	markExplain  = "Explain like"
)
