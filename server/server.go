// Package server provides the casegen web UI and JSON API: users upload
// screenshots, and each one is turned into manual test case instructions.
package server

import (
	"net"
	"net/http"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/papercomputeco/casegen/pkg/llm"
	"github.com/papercomputeco/casegen/pkg/orchestrator"
	"github.com/papercomputeco/casegen/pkg/session"
)

// Server serves the single page UI and its API. All state lives in the
// session.Store; the server itself holds none between requests.
type Server struct {
	config       Config
	orchestrator *orchestrator.Orchestrator
	store        session.Store
	logger       *zap.Logger
	server       *fiber.App
}

// New creates a new Server.
func New(config Config, orch *orchestrator.Orchestrator, store session.Store, logger *zap.Logger) (*Server, error) {
	static, err := staticFS()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		BodyLimit:             config.BodyLimit,
	})

	s := &Server{
		config:       config,
		orchestrator: orch,
		store:        store,
		logger:       logger,
		server:       app,
	}

	app.Use(recover.New())
	app.Use(s.logRequests)

	// Register routes
	app.Get("/", s.withSession, s.handleIndex)
	app.Post("/generate", s.withSession, s.handleGenerate)
	app.Post("/api/generate", s.withSession, s.handleStreamingGenerate)
	app.Get("/api/history", s.withSession, s.handleHistory)
	app.Delete("/api/history", s.withSession, s.handleClearHistory)
	app.Post("/history/clear", s.withSession, s.handleClearHistoryForm)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	app.Get("/static/*", adaptor.HTTPHandler(http.StripPrefix("/static/", http.FileServerFS(static))))

	return s, nil
}

// Run starts the server on the configured listening address
func (s *Server) Run() error {
	s.logger.Info("starting casegen server",
		zap.String("listen", s.config.ListenAddr),
		zap.Int("body_limit", s.config.BodyLimit),
	)

	return s.server.Listen(s.config.ListenAddr)
}

// RunWithListener starts the server on an existing listener.
func (s *Server) RunWithListener(ln net.Listener) error {
	s.logger.Info("starting casegen server", zap.String("listen", ln.Addr().String()))
	return s.server.Listener(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

// logRequests logs every request once it has been handled.
func (s *Server) logRequests(c *fiber.Ctx) error {
	startTime := time.Now()
	err := c.Next()

	s.logger.Debug("handled request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("duration", time.Since(startTime)),
		zap.Error(err),
	)

	return err
}

// handleHistory returns the full chat history of the caller's session.
func (s *Server) handleHistory(c *fiber.Ctx) error {
	entries := sessionLog(c).All()

	return c.JSON(HistoryResponse{
		Count:   len(entries),
		Entries: entries,
	})
}

// handleClearHistory ends the caller's session. The cookie is kept, so the
// next request starts an empty log under the same id.
func (s *Server) handleClearHistory(c *fiber.Ctx) error {
	s.clearHistory(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// handleClearHistoryForm is the HTML form variant of handleClearHistory.
func (s *Server) handleClearHistoryForm(c *fiber.Ctx) error {
	s.clearHistory(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) clearHistory(c *fiber.Ctx) {
	id := sessionID(c)
	s.store.Delete(c.UserContext(), id)
	s.logger.Info("cleared session history", zap.Int("entries", len(sessionLog(c).All())))
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	// Count is the number of entries in the history
	Count int `json:"count"`
	// Entries in append order (oldest first)
	Entries []session.ChatEntry `json:"entries"`
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(llm.ErrorResponse{Error: msg})
}
