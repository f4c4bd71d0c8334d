package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	var got generateRequest
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]string{"response": "Vamos pensar juntos: qual é o delta?"})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "llama3.1", 5*time.Second)

	answer, err := client.Generate(context.Background(), "Como resolvo x² - 4 = 0?")
	require.NoError(t, err)
	require.Equal(t, "Vamos pensar juntos: qual é o delta?", answer)

	require.Equal(t, "llama3.1", got.Model)
	require.False(t, got.Stream)
	require.True(t, strings.HasPrefix(got.Prompt, tutorInstruction), "prompt must start with the tutor instruction")
	require.True(t, strings.HasSuffix(got.Prompt, "Como resolvo x² - 4 = 0?"))
}

func TestGenerate_EmptyResponseField(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "llama3.1", 5*time.Second)

	answer, err := client.Generate(context.Background(), "oi")
	require.NoError(t, err)
	require.Equal(t, "", answer)
}

func TestGenerate_UpstreamStatusError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "llama3.1", 5*time.Second)

	_, err := client.Generate(context.Background(), "oi")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestGenerate_Unreachable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // porta fechada

	client := NewClient(backend.URL, "llama3.1", time.Second)

	_, err := client.Generate(context.Background(), "oi")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "llama3.1", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "oi")
	require.Error(t, err)
}
