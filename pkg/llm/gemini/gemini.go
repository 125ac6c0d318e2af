// Package gemini implements llm.Generator on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/papercomputeco/casegen/pkg/llm"
)

// ErrEmptyResponse is the cause when the service returns neither a response nor an error.
var ErrEmptyResponse = errors.New("service returned no response")

// Config is the Gemini adapter configuration.
type Config struct {
	APIKey string
	Model  string
}

// ContentGenerator is the subset of *genai.Models the adapter calls.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator sends one prompt + image request per call. It keeps no state
// between calls: no retries, no caching.
type Generator struct {
	models ContentGenerator
	model  string
	logger *zap.Logger
}

var _ llm.Generator = (*Generator)(nil)

// New creates a Generator backed by the Gemini API.
func New(ctx context.Context, config Config, logger *zap.Logger) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return NewWithModels(client.Models, config.Model, logger), nil
}

// NewWithModels creates a Generator over an existing content generator.
func NewWithModels(models ContentGenerator, model string, logger *zap.Logger) *Generator {
	return &Generator{
		models: models,
		model:  model,
		logger: logger,
	}
}

// Generate implements llm.Generator. The request content is the effective
// prompt followed by the image; the result is every text part of every
// candidate, in order.
func (g *Generator) Generate(ctx context.Context, req *llm.GenerationRequest) (string, error) {
	if req == nil || req.Image == nil || len(req.Image.Data) == 0 {
		return "", llm.ErrNoImage
	}

	prompt := llm.EffectivePrompt(req.Prompt)
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType),
		}, genai.RoleUser),
	}

	g.logger.Debug("sending generation request",
		zap.String("model", g.model),
		zap.Int("image_index", req.Image.Index),
		zap.String("mime_type", req.Image.MIMEType),
		zap.Int("image_bytes", len(req.Image.Data)),
		zap.Bool("default_prompt", req.Prompt == ""),
	)

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &llm.GenerationError{Model: g.model, Err: err}
	}
	if resp == nil {
		return "", &llm.GenerationError{Model: g.model, Err: ErrEmptyResponse}
	}

	text := concatCandidates(resp)

	g.logger.Debug("received generation response",
		zap.Int("image_index", req.Image.Index),
		zap.Int("candidates", len(resp.Candidates)),
		zap.Int("text_len", len(text)),
		zap.Duration("duration", time.Since(start)),
	)

	return text, nil
}

// concatCandidates joins all candidates rather than picking the first one.
func concatCandidates(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
