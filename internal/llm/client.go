// Package llm wraps the local Ollama HTTP API behind a minimal,
// non-streaming client.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// tutorInstruction é o preâmbulo fixo adicionado a toda mensagem: o modelo
// deve guiar o aluno, não entregar a resposta pronta.
const tutorInstruction = "Você é um professor paciente e didático. " +
	"Explique de forma clara e passo a passo, como se estivesse ajudando um aluno a entender o conteúdo. " +
	"Sempre incentive o raciocínio do aluno e evite dar a resposta diretamente logo de cara.\n\n"

var ErrUpstream = errors.New("erro ao se comunicar com o Ollama")

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate prepends the tutor instruction to the caller's message, invokes
// the backend synchronously and returns its response text. Any transport
// failure or non-200 status comes back wrapped in ErrUpstream.
func (c *Client) Generate(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: tutorInstruction + message,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return gr.Response, nil
}
