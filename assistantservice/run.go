// Package assistantservice wires the agent core into a running service:
// profile store, tool registry, orchestrator, proactive monitor and the
// HTTP surface.
package assistantservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/agent"
	"github.com/Malekse21/Senior-Voice/internal/api"
	"github.com/Malekse21/Senior-Voice/internal/config"
	"github.com/Malekse21/Senior-Voice/internal/events"
	"github.com/Malekse21/Senior-Voice/internal/llm"
	"github.com/Malekse21/Senior-Voice/internal/logger"
	"github.com/Malekse21/Senior-Voice/internal/monitor"
	"github.com/Malekse21/Senior-Voice/internal/scheduler"
	"github.com/Malekse21/Senior-Voice/internal/speech"
	"github.com/Malekse21/Senior-Voice/internal/store"
	"github.com/Malekse21/Senior-Voice/internal/tools"
	"github.com/Malekse21/Senior-Voice/mcpserver"
)

const eventBusBuffer = 64

// Run starts the assistant HTTP service and blocks until shutdown or
// error.
func Run() error {
	log := logger.New("seniorvoice")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	ctx, stop := newServerContext()
	defer stop()

	core, err := buildCore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = core.store.Close() }()
	defer core.sched.Stop()

	// Proactive monitor runs for the whole service lifetime.
	go func() {
		if err := core.monitor.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("proactive monitor stopped")
		}
	}()

	router := api.NewRouter(api.Deps{
		Store:       core.store,
		Runner:      core.orchestrator,
		Transcriber: core.groq,
		Bus:         core.bus,
		Log:         log,
	})

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// RunMCP serves the tool catalog over MCP stdio instead of HTTP.
func RunMCP() error {
	log := logger.New("seniorvoice-mcp")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	core, err := buildCore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = core.store.Close() }()
	defer core.sched.Stop()

	return mcpserver.New(core.registry, log).ServeStdio()
}

// core bundles the wired components shared by both entry points.
type core struct {
	store        *store.Store
	bus          *events.Bus
	sched        *scheduler.Scheduler
	groq         *llm.GroqClient
	registry     *tools.Registry
	orchestrator *agent.Orchestrator
	monitor      *monitor.Monitor
}

func buildCore(cfg *config.Config, log zerolog.Logger) (*core, error) {
	st, err := store.NewFromConfig(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("profile store unavailable")
		return nil, err
	}

	bus := events.NewBus(eventBusBuffer)
	speaker := speech.NewBusSpeaker(bus, log)
	sched := scheduler.New(log)

	// Env key wins; otherwise the key saved through settings is used.
	keyFn := func(ctx context.Context) string {
		if cfg.GroqAPIKey != "" {
			return cfg.GroqAPIKey
		}
		return st.APIKeys(ctx).Groq
	}
	groq := llm.NewGroqClient(
		cfg.GroqBaseURL,
		cfg.PlanModel,
		cfg.WhisperModel,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second,
		keyFn,
	)

	registry := tools.NewRegistry(cfg, st, bus, speaker, sched, log)
	orchestrator := agent.NewOrchestrator(cfg, st, groq, registry, speaker, log)
	mon := monitor.New(st, speaker, monitor.Config{
		Interval: time.Duration(cfg.MonitorIntervalMinutes) * time.Minute,
	}, log)

	return &core{
		store:        st,
		bus:          bus,
		sched:        sched,
		groq:         groq,
		registry:     registry,
		orchestrator: orchestrator,
		monitor:      mon,
	}, nil
}

func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: /api/events streams indefinitely.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
