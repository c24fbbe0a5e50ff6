package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/models"
)

const defaultGeneratePath = "/api/ai/audit"

type HTTPOptions struct {
	BaseURL        string
	Path           string
	APIKey         string
	Model          string
	ThinkingBudget int32
}

// HTTPInvoker posts payloads to a GenAI gateway.
type HTTPInvoker struct {
	opts   HTTPOptions
	client *http.Client
}

func NewHTTPInvoker(opts HTTPOptions, client *http.Client) *HTTPInvoker {
	if opts.Path == "" {
		opts.Path = defaultGeneratePath
	}
	if client == nil {
		// Deadlines come from the caller's context.
		client = &http.Client{}
	}
	return &HTTPInvoker{opts: opts, client: client}
}

type generateRequest struct {
	Model             string `json:"model,omitempty"`
	SystemInstruction string `json:"systemInstruction,omitempty"`
	Prompt            string `json:"prompt"`
	WebSearch         bool   `json:"webSearch"`
	JSONOnly          bool   `json:"jsonOnly"`
	ThinkingBudget    int32  `json:"thinkingBudget,omitempty"`
}

type generateResponse struct {
	Text      string            `json:"text"`
	Citations []models.Citation `json:"citations"`
}

func (h *HTTPInvoker) Invoke(ctx context.Context, payload *bundle.Payload) (*Response, error) {
	body, err := json.Marshal(generateRequest{
		Model:             h.opts.Model,
		SystemInstruction: payload.SystemInstruction,
		Prompt:            payload.Prompt,
		WebSearch:         payload.WebSearch,
		JSONOnly:          payload.JSONOnly,
		ThinkingBudget:    h.opts.ThinkingBudget,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrEngineInvocationFailed, err)
	}

	url := strings.TrimRight(h.opts.BaseURL, "/") + h.opts.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineInvocationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.opts.APIKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, wrapError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrEngineInvocationFailed, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrEngineInvocationFailed, err)
	}

	return &Response{
		Text:      out.Text,
		Citations: dedupeCitations(out.Citations),
	}, nil
}
