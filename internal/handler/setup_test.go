package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/afternote/internal/config"
	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/filestore"
	"github.com/xxxsen/afternote/internal/handler"
	"github.com/xxxsen/afternote/internal/middleware"
	"github.com/xxxsen/afternote/internal/pkg/jwt"
	"github.com/xxxsen/afternote/internal/pkg/response"
	"github.com/xxxsen/afternote/internal/repo"
	"github.com/xxxsen/afternote/internal/service"
	"github.com/xxxsen/afternote/internal/testutil"
)

var testSecret = []byte("test-secret")

// scriptedGen answers the first reply whose marker appears in the prompt.
type scriptedGen struct {
	mu      sync.Mutex
	replies map[string]string
	calls   int
}

func (g *scriptedGen) Generate(ctx context.Context, p string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	for marker, reply := range g.replies {
		if strings.Contains(p, marker) {
			return reply, nil
		}
	}
	return "", errors.New("model offline")
}

func (g *scriptedGen) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type testServer struct {
	t      *testing.T
	router http.Handler
	gen    *scriptedGen
}

func setupRouter(t *testing.T, replies map[string]string, maxFileSize int64) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := testutil.OpenTestDB(t)
	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	noteRepo := repo.NewNoteRepo(h)
	docRepo := repo.NewDocumentRepo(h)
	folderRepo := repo.NewFolderRepo(h)
	mindmapRepo := repo.NewMindMapRepo(h)
	examRepo := repo.NewExamRepo(h)
	gen := &scriptedGen{replies: replies}
	orch := enrich.NewOrchestrator(gen)

	deps := handler.RouterDeps{
		Folders:   handler.NewFolderHandler(service.NewFolderService(folderRepo, noteRepo, docRepo, mindmapRepo, examRepo)),
		Notes:     handler.NewNoteHandler(service.NewNoteService(noteRepo, folderRepo, orch, 0)),
		Documents: handler.NewDocumentHandler(service.NewDocumentService(docRepo, folderRepo, store, orch, 0), maxFileSize),
		MindMaps:  handler.NewMindMapHandler(service.NewMindMapService(mindmapRepo, folderRepo, orch, 0)),
		Exams:     handler.NewExamHandler(service.NewExamService(examRepo, folderRepo, orch, 0)),
		AI:        handler.NewAIHandler(service.NewStudyService(noteRepo, docRepo, orch, 0)),
		JWTSecret: testSecret,
	}
	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return &testServer{t: t, router: engine, gen: gen}
}

func (s *testServer) token(userID string) string {
	token, err := jwt.GenerateToken(userID, testSecret, time.Hour)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(req *http.Request, userID string) *httptest.ResponseRecorder {
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(userID))
	}
	resp := httptest.NewRecorder()
	s.router.ServeHTTP(resp, req)
	require.Equal(s.t, http.StatusOK, resp.Code)
	return resp
}

// call sends a JSON request and decodes the envelope; out may be nil.
func (s *testServer) call(method, path, userID string, body interface{}, out interface{}) int {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.decode(s.do(req, userID), out)
}

func (s *testServer) upload(userID, filename, declaredType string, data []byte, out interface{}) int {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", declaredType)
	part, err := w.CreatePart(header)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.decode(s.do(req, userID), out)
}

func (s *testServer) decode(resp *httptest.ResponseRecorder, out interface{}) int {
	var body response.Body
	require.NoError(s.t, json.Unmarshal(resp.Body.Bytes(), &body))
	if body.Code == 0 && out != nil {
		require.NoError(s.t, json.Unmarshal(body.Data, out))
	}
	return body.Code
}
