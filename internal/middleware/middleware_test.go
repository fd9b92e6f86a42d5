package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/afternote/internal/pkg/errcode"
	"github.com/xxxsen/afternote/internal/pkg/jwt"
	"github.com/xxxsen/afternote/internal/pkg/response"
)

var secret = []byte("test-secret")

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), CORS(nil))
	r.GET("/whoami", JWTAuth(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserIDKey))
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	r := newTestRouter()
	token, err := jwt.GenerateToken("u1", secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u1", w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestJWTAuthRejects(t *testing.T) {
	r := newTestRouter()
	other, err := jwt.GenerateToken("u1", []byte("other"), time.Hour)
	require.NoError(t, err)
	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt", "Bearer " + other} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var body response.Body
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), header)
		require.Equal(t, errcode.ErrUnauthorized, body.Code, header)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	req.Header.Set("X-Request-Id", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "abc", w.Header().Get("X-Request-Id"))
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com/"}))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	tests := []struct {
		origin string
		allow  string
	}{
		{origin: "https://app.example.com", allow: "https://app.example.com"},
		{origin: "https://evil.example.com", allow: ""},
		{origin: "", allow: ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, tt.origin)
		require.Equal(t, tt.allow, w.Header().Get("Access-Control-Allow-Origin"), tt.origin)
		if tt.allow != "" {
			require.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
		}
	}
}

func TestJWTAuthQueryToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	echo := func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserIDKey))
	}
	r.GET("/file", JWTAuth(secret), echo)
	r.POST("/file", JWTAuth(secret), echo)
	token, err := jwt.GenerateToken("u1", secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/file?access_token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "u1", w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/file?access_token="+token, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, errcode.ErrUnauthorized, body.Code)
}
