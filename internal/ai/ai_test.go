package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderRegistry(t *testing.T) {
	for _, name := range []string{"gemini", "openai", "OpenRouter"} {
		p, err := NewProvider(name, map[string]interface{}{"api_key": "k"})
		require.NoError(t, err, name)
		require.NotNil(t, p)
	}
	_, err := NewProvider("", nil)
	require.Error(t, err)
	_, err = NewProvider("unknown", map[string]interface{}{})
	require.Error(t, err)
	_, err = NewProvider("openai", nil)
	require.Error(t, err)
}

func TestChatClientWithoutKeyIsUnavailable(t *testing.T) {
	p, err := NewProvider("openai", map[string]interface{}{})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), "m", "hi")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestChatClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		assert.Equal(t, "afternote", r.Header.Get("X-Title"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  hello \n"}}]}`))
	}))
	defer srv.Close()

	p, err := NewProvider("openrouter", map[string]interface{}{"api_key": "k", "base_url": srv.URL, "x_title": "afternote"})
	require.NoError(t, err)
	out, err := NewGenerator(p, "m").Generate(context.Background(), "hi")
	require.NoError(t, err)
	require.Equal(t, "hello", out)
}

func TestChatClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, err := NewProvider("openai", map[string]interface{}{"api_key": "k", "base_url": srv.URL})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), "m", "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestCachedGeneratorOnlyCachesSuccess(t *testing.T) {
	calls := 0
	fail := true
	gen := NewCachedGenerator(GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if fail {
			return "", errors.New("boom")
		}
		return "ok:" + prompt, nil
	}), 10, time.Minute)

	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	fail = false
	out, err := gen.Generate(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "ok:p", out)
	out, err = gen.Generate(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "ok:p", out)
	require.Equal(t, 2, calls)
}

func TestCachedGeneratorDisabled(t *testing.T) {
	base := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) { return prompt, nil })
	gen := NewCachedGenerator(base, 0, time.Minute)
	_, ok := gen.(*cachedGenerator)
	require.False(t, ok)
}
