package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/papercomputeco/casegen/pkg/llm"
	"github.com/papercomputeco/casegen/pkg/logger"
	"github.com/papercomputeco/casegen/pkg/orchestrator"
)

// handleIndex renders the empty form and the session's chat history.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	return s.renderPage(c, fiber.StatusOK, pageData{})
}

// handleGenerate runs a whole batch from the HTML form and re-renders the
// page with per-image results and the updated history.
func (s *Server) handleGenerate(c *fiber.Ctx) error {
	startTime := time.Now()

	batch, err := readBatch(c)
	if err != nil {
		status := s.uploadErrorStatus(err)
		return s.renderPage(c, status, pageData{Prompt: batch.Prompt, Error: err.Error()})
	}

	s.logger.Debug("received generate request",
		zap.Int("images", len(batch.Images)),
		zap.String("prompt_preview", logger.Truncate(batch.Prompt, 50)),
	)

	result, err := s.orchestrator.Submit(c.UserContext(), sessionLog(c), batch, nil)
	if err != nil {
		var vErr *orchestrator.ValidationError
		if errors.As(err, &vErr) {
			return s.renderPage(c, fiber.StatusUnprocessableEntity, pageData{Prompt: batch.Prompt, Error: vErr.Message})
		}
		s.logger.Error("generation batch failed", zap.Error(err))
		return s.renderPage(c, fiber.StatusInternalServerError, pageData{Prompt: batch.Prompt, Error: "internal error"})
	}

	s.logger.Info("generate request complete",
		zap.Int("images", len(result.Images)),
		zap.Int("failed", result.Failed()),
		zap.Duration("duration", time.Since(startTime)),
	)

	return s.renderPage(c, fiber.StatusOK, pageData{
		Prompt:  batch.Prompt,
		Results: newResultViews(result),
	})
}

// handleStreamingGenerate runs a batch and streams one NDJSON event per image
// as soon as that image is done, then a final summary event.
func (s *Server) handleStreamingGenerate(c *fiber.Ctx) error {
	batch, err := readBatch(c)
	if err != nil {
		return errorJSON(c, s.uploadErrorStatus(err), err.Error())
	}

	// Validate before committing to a streamed 200.
	if err := batch.Validate(); err != nil {
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	log := sessionLog(c)

	c.Set("Content-Type", "application/x-ndjson")
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The request context is gone once the handler returns; a failed
		// write means the client left, which cancels the remaining images.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// The writer runs on its own goroutine, outside the recover middleware.
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("stream writer panicked", zap.Any("panic", r))
			}
		}()

		enc := json.NewEncoder(w)
		write := func(ev llm.StreamEvent) {
			err := enc.Encode(ev)
			if err == nil {
				err = w.Flush()
			}
			if err != nil {
				s.logger.Warn("failed to write stream event", zap.Error(err))
				cancel()
			}
		}

		result, err := s.orchestrator.Submit(ctx, log, batch, func(r orchestrator.ImageResult) {
			ev := llm.StreamEvent{Type: llm.EventResult, Index: r.Index, Name: r.Name, Text: r.Text}
			if r.Failed() {
				ev.Error = orchestrator.FailureText(r.Index, r.Err)
			}
			write(ev)
		})
		if err != nil {
			s.logger.Error("generation batch failed", zap.Error(err))
			return
		}

		write(llm.StreamEvent{Type: llm.EventDone, Total: len(result.Images), Failed: result.Failed()})
	}))

	return nil
}

func (s *Server) uploadErrorStatus(err error) int {
	var upErr *UploadError
	if errors.As(err, &upErr) {
		return fiber.StatusBadRequest
	}
	if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
		return fiber.StatusRequestEntityTooLarge
	}
	s.logger.Error("failed to read upload", zap.Error(err))
	return fiber.StatusInternalServerError
}
