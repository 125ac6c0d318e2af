package servecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/casegen/pkg/config"
	"github.com/papercomputeco/casegen/pkg/llm/gemini"
	"github.com/papercomputeco/casegen/pkg/logger"
	"github.com/papercomputeco/casegen/pkg/orchestrator"
	"github.com/papercomputeco/casegen/pkg/session"
	"github.com/papercomputeco/casegen/server"
)

const serveLongDesc string = `Start the casegen web UI.

Upload one or more JPEG/PNG screenshots, optionally add context, and
get step-by-step manual test cases generated by Gemini for each image.
The chat history of each browser session is kept in memory until the
session has been idle for SESSION_TTL.

Settings are read from a .env file, the optional --config TOML file and
the environment. GOOGLE_API_KEY is required.

Examples:
  casegen serve
  casegen serve --listen 127.0.0.1:8501 --debug
  casegen serve --config ./casegen.toml`

const serveShortDesc string = "Run the test case generator web UI"

type serveCommander struct {
	configPath string
	listenAddr string
	debug      bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to a TOML config file")
	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on (overrides LISTEN_ADDR)")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr = c.listenAddr
	}
	if c.debug {
		cfg.Debug = true
	}

	log := logger.NewLogger(cfg.Debug, logger.Format(cfg.LogFormat))
	defer log.Sync()

	log.Info("casegen starting",
		zap.String("listen", cfg.ListenAddr),
		zap.String("model", cfg.Model),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Duration("generation_interval", cfg.GenerationInterval),
		zap.Bool("debug", cfg.Debug),
	)

	gen, err := gemini.New(ctx, gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model}, log)
	if err != nil {
		return fmt.Errorf("could not create generator: %w", err)
	}

	orch := orchestrator.New(gen, orchestrator.Config{Interval: cfg.GenerationInterval}, log)
	store := session.NewMemoryStore(cfg.SessionTTL)

	srv, err := server.New(server.Config{
		ListenAddr: cfg.ListenAddr,
		BodyLimit:  cfg.BodyLimit(),
		SessionTTL: cfg.SessionTTL,
	}, orch, store, log)
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down", zap.Int("live_sessions", store.Len()))
		return srv.Shutdown()
	}
}
