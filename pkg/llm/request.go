package llm

import "context"

// Image is one uploaded picture in a submit batch.
type Image struct {
	Index    int    `json:"index"`     // 1-based position in the upload batch
	Name     string `json:"name"`      // Original file name
	MIMEType string `json:"mime_type"` // "image/jpeg" or "image/png"
	Data     []byte `json:"-"`         // Raw file bytes
}

// GenerationRequest is one prompt + image pair. It is built per image and
// consumed immediately.
type GenerationRequest struct {
	Prompt string // Caller supplied context, may be empty
	Image  *Image
}

// Generator produces test case instruction text for one image.
type Generator interface {
	Generate(ctx context.Context, req *GenerationRequest) (string, error)
}
