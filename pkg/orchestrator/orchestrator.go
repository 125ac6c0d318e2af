// Package orchestrator drives test case generation across the images of one
// submit event and records the exchange in the session log.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/papercomputeco/casegen/pkg/llm"
	"github.com/papercomputeco/casegen/pkg/logger"
	"github.com/papercomputeco/casegen/pkg/session"
)

// ErrNoImages is the cause of the ValidationError for an empty batch.
var ErrNoImages = errors.New("no images uploaded")

// NoImagesMessage is shown to the user when a batch has no images.
const NoImagesMessage = "Please upload at least one image."

// ValidationError reports a batch that was rejected before any generation call.
// Message is safe to show to the end user.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Appender is the write side of a session log.
type Appender interface {
	Append(entries ...session.ChatEntry)
}

// Batch is the input of one submit event. Prompt applies to every image.
type Batch struct {
	Prompt string
	Images []llm.Image
}

// Validate rejects a batch that must not reach the generator.
func (b Batch) Validate() error {
	if len(b.Images) == 0 {
		return &ValidationError{Message: NoImagesMessage, Err: ErrNoImages}
	}
	return nil
}

// ImageResult is the outcome for one image of a batch.
type ImageResult struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	Err   error  `json:"-"`
}

// Failed reports whether generation for this image failed.
func (r ImageResult) Failed() bool {
	return r.Err != nil
}

// Result holds per-image outcomes in upload order.
type Result struct {
	Images []ImageResult
}

// Failed counts images whose generation failed.
func (r *Result) Failed() int {
	n := 0
	for _, img := range r.Images {
		if img.Failed() {
			n++
		}
	}
	return n
}

// Config is the orchestrator configuration.
type Config struct {
	// Interval is the minimum gap between two generation calls. Zero disables pacing.
	Interval time.Duration
}

// Orchestrator runs one generation call per image, in upload order, one at a time.
type Orchestrator struct {
	generator llm.Generator
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// New creates an Orchestrator.
func New(generator llm.Generator, config Config, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		generator: generator,
		logger:    logger,
	}
	if config.Interval > 0 {
		o.limiter = rate.NewLimiter(rate.Every(config.Interval), 1)
	}
	return o
}

// Submit generates instructions for every image in batch and appends a
// ("user", prompt), ("bot-image-n", text) pair to log per image. A failed
// image is recorded as a Failed bot entry and the batch carries on.
// onResult, if non-nil, is called after each image's pair is appended.
//
// An empty batch returns a *ValidationError and leaves log untouched.
func (o *Orchestrator) Submit(ctx context.Context, log Appender, batch Batch, onResult func(ImageResult)) (*Result, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	result := &Result{Images: make([]ImageResult, 0, len(batch.Images))}

	o.logger.Info("generation batch started",
		zap.Int("images", len(batch.Images)),
		zap.Bool("default_prompt", batch.Prompt == ""),
	)

	for i := range batch.Images {
		image := batch.Images[i]
		image.Index = i + 1

		res := o.generateOne(ctx, batch.Prompt, &image)

		bot := session.ChatEntry{Role: session.BotRole(res.Index), Text: res.Text}
		if res.Failed() {
			bot.Text = FailureText(res.Index, res.Err)
			bot.Failed = true
		}
		log.Append(session.ChatEntry{Role: session.RoleUser, Text: batch.Prompt}, bot)

		result.Images = append(result.Images, res)
		if onResult != nil {
			onResult(res)
		}
	}

	o.logger.Info("generation batch finished",
		zap.Int("images", len(result.Images)),
		zap.Int("failed", result.Failed()),
		zap.Duration("duration", time.Since(startTime)),
	)

	return result, nil
}

// generateOne is the failure boundary for a single image.
func (o *Orchestrator) generateOne(ctx context.Context, prompt string, image *llm.Image) (res ImageResult) {
	res = ImageResult{Index: image.Index, Name: image.Name}

	// A panicking generator fails only this image.
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("image generation panicked",
				zap.Int("image_index", image.Index),
				zap.String("image_name", image.Name),
				zap.Any("panic", r),
			)
			res.Text = ""
			res.Err = fmt.Errorf("generation panicked: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			res.Err = fmt.Errorf("waiting for rate limiter: %w", err)
			return res
		}
	}

	startTime := time.Now()
	text, err := o.generator.Generate(ctx, &llm.GenerationRequest{Prompt: prompt, Image: image})
	if err != nil {
		o.logger.Error("image generation failed",
			zap.Int("image_index", image.Index),
			zap.String("image_name", image.Name),
			zap.Error(err),
		)
		res.Err = err
		return res
	}

	o.logger.Debug("image generation complete",
		zap.Int("image_index", image.Index),
		zap.String("content_preview", logger.Truncate(text, 100)),
		zap.Duration("duration", time.Since(startTime)),
	)

	res.Text = text
	return res
}

// FailureText is the chat history text recorded for a failed image.
func FailureText(index int, err error) string {
	return fmt.Sprintf("Failed to generate testing instructions for image %d: %v", index, err)
}
