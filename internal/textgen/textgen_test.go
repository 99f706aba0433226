// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curriculum-engine/internal/httputil"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

func completionServer(t *testing.T, handler func(w http.ResponseWriter, req chatRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
	})
}

func TestGenerate(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "hello", req.Messages[0].Content)
		}
		writeCompletion(w, "hi there")
	}))
	defer srv.Close()

	c := New(types.TextGenConfig{Endpoint: srv.URL, Model: "test-model", APIKey: "sk-test"})
	got, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", c.Model())
}

func TestGenerateDefaults(t *testing.T) {
	c := New(types.TextGenConfig{})
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, defaultTimeout, c.HTTP.Timeout)
}

func TestGenerateRetriesRateLimit(t *testing.T) {
	orig := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { httputil.RetryBaseDelay = orig })

	var calls atomic.Int32
	srv := completionServer(t, func(w http.ResponseWriter, req chatRequest) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeCompletion(w, "ok")
	})

	got, err := New(types.TextGenConfig{Endpoint: srv.URL}).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		}, "HTTP 401"},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		}, "decoding"},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}, ErrEmptyResponse.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			_, err := New(types.TextGenConfig{Endpoint: srv.URL}).Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestSkillKeywords(t *testing.T) {
	g := &stubGenerator{text: "goroutines, channels , , Channels, generics"}
	got := SkillKeywords(context.Background(), g, "Go", nil)

	assert.Equal(t, []string{"goroutines", "channels", "generics"}, got)
	assert.True(t, strings.HasPrefix(g.prompt, "Generate a list of 10-15 relevant keywords and topics for learning: Go."))
}

func TestSkillKeywordsFallback(t *testing.T) {
	want := []string{"Go", "Go basics", "Go tutorial", "Go course", "Go training"}
	ctx := context.Background()

	assert.Equal(t, want, SkillKeywords(ctx, &stubGenerator{err: errors.New("down")}, "Go", nil))
	assert.Equal(t, want, SkillKeywords(ctx, &stubGenerator{text: " , "}, "Go", nil))
	assert.Equal(t, want, SkillKeywords(ctx, nil, "Go", nil))
}

func TestPathDescription(t *testing.T) {
	ctx := context.Background()
	g := &stubGenerator{text: "  Start with syntax.  "}
	got := PathDescription(ctx, g, "Go", types.DifficultyBeginner, "", nil)
	assert.Equal(t, "Start with syntax.", got)
	assert.Contains(t, g.prompt, "Current level: BEGINNER. Goals: become proficient in Go.")

	got = PathDescription(ctx, &stubGenerator{err: errors.New("down")}, "Go", types.DifficultyAdvanced, "", nil)
	assert.Equal(t, "A structured learning path to master Go, starting at the advanced level.", got)
}
