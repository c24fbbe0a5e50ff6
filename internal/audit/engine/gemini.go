package engine

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/models"
)

const (
	DefaultModel          = "gemini-3-flash-preview"
	DefaultThinkingBudget = 15000
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiOptions struct {
	APIKey         string
	Model          string
	ThinkingBudget int32
}

// GeminiInvoker calls the Gemini API with optional Google Search grounding.
type GeminiInvoker struct {
	models         contentGenerator
	model          string
	thinkingBudget int32
}

func NewGeminiInvoker(ctx context.Context, opts GeminiOptions) (*GeminiInvoker, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGeminiInvoker(client.Models, opts), nil
}

func newGeminiInvoker(gen contentGenerator, opts GeminiOptions) *GeminiInvoker {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	budget := opts.ThinkingBudget
	if budget == 0 {
		budget = DefaultThinkingBudget
	}
	return &GeminiInvoker{models: gen, model: model, thinkingBudget: budget}
}

func (g *GeminiInvoker) Invoke(ctx context.Context, payload *bundle.Payload) (*Response, error) {
	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(payload.Prompt, genai.RoleUser)},
		g.generateConfig(payload),
	)
	if err != nil {
		return nil, wrapError(ctx, err)
	}

	return &Response{
		Text:      resp.Text(),
		Citations: groundingCitations(resp),
	}, nil
}

func (g *GeminiInvoker) generateConfig(payload *bundle.Payload) *genai.GenerateContentConfig {
	budget := g.thinkingBudget
	cfg := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: &budget},
	}
	if payload.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(payload.SystemInstruction, genai.RoleUser)
	}
	if payload.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else if payload.JSONOnly {
		// JSON mime type cannot be combined with the search tool.
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func groundingCitations(resp *genai.GenerateContentResponse) []models.Citation {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var citations []models.Citation
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		citations = append(citations, models.Citation{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return dedupeCitations(citations)
}
