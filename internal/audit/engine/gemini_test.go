package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/models"
)

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
	calls    int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func groundedResponse(text string, chunks ...*genai.GroundingChunk) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			},
			GroundingMetadata: &genai.GroundingMetadata{GroundingChunks: chunks},
		}},
	}
}

func webChunk(title, uri string) *genai.GroundingChunk {
	return &genai.GroundingChunk{Web: &genai.GroundingChunkWeb{Title: title, URI: uri}}
}

func testPayload() *bundle.Payload {
	return &bundle.Payload{
		CaseType:          models.CaseTypeWork,
		SystemInstruction: "You are DocuShield.",
		Prompt:            "Audit the following Canadian Work Permit application.",
		WebSearch:         true,
		JSONOnly:          true,
	}
}

func TestGeminiInvoker_Invoke(t *testing.T) {
	gen := &fakeGenerator{resp: groundedResponse(`{"overall_risk_level":"Low"}`,
		webChunk("IRCC", "https://www.canada.ca/ircc"),
		&genai.GroundingChunk{},
		webChunk("IRCC duplicate", "https://www.canada.ca/ircc"),
		webChunk("", "https://example.org/lmia"),
	)}
	inv := newGeminiInvoker(gen, GeminiOptions{})

	resp, err := inv.Invoke(context.Background(), testPayload())
	require.NoError(t, err)

	assert.Equal(t, `{"overall_risk_level":"Low"}`, resp.Text)
	assert.Equal(t, []models.Citation{
		{Title: "IRCC", URI: "https://www.canada.ca/ircc"},
		{URI: "https://example.org/lmia"},
	}, resp.Citations)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, DefaultModel, gen.model)
	require.Len(t, gen.contents, 1)
	assert.Equal(t, "Audit the following Canadian Work Permit application.", gen.contents[0].Parts[0].Text)

	require.NotNil(t, gen.config.SystemInstruction)
	assert.Equal(t, "You are DocuShield.", gen.config.SystemInstruction.Parts[0].Text)
	require.Len(t, gen.config.Tools, 1)
	assert.NotNil(t, gen.config.Tools[0].GoogleSearch)
	assert.Empty(t, gen.config.ResponseMIMEType)
	require.NotNil(t, gen.config.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(DefaultThinkingBudget), *gen.config.ThinkingConfig.ThinkingBudget)
}

func TestGeminiInvoker_JSONModeWithoutSearch(t *testing.T) {
	gen := &fakeGenerator{resp: groundedResponse("{}")}
	inv := newGeminiInvoker(gen, GeminiOptions{Model: "gemini-2.5-pro", ThinkingBudget: 2048})

	p := testPayload()
	p.WebSearch = false
	_, err := inv.Invoke(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", gen.model)
	assert.Empty(t, gen.config.Tools)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	assert.Equal(t, int32(2048), *gen.config.ThinkingConfig.ThinkingBudget)
}

func TestGeminiInvoker_NoCandidates(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.GenerateContentResponse{}}
	inv := newGeminiInvoker(gen, GeminiOptions{})

	resp, err := inv.Invoke(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
	assert.Nil(t, resp.Citations)
}

func TestGeminiInvoker_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "quota exhausted", err: errors.New("Error 429, RESOURCE_EXHAUSTED"), wantErr: ErrEngineInvocationFailed},
		{name: "deadline", err: context.DeadlineExceeded, wantErr: ErrEngineTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{err: tt.err}
			inv := newGeminiInvoker(gen, GeminiOptions{})

			resp, err := inv.Invoke(context.Background(), testPayload())
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, 1, gen.calls)
		})
	}
}

func TestNewGeminiInvoker_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiInvoker(context.Background(), GeminiOptions{})
	assert.Error(t, err)
}
