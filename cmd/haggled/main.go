package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bazaar-agents/haggle/agent"
	"github.com/bazaar-agents/haggle/api"
	"github.com/bazaar-agents/haggle/archive"
	"github.com/bazaar-agents/haggle/engine"
	"github.com/bazaar-agents/haggle/observability"
)

func main() {
	var (
		addr        = flag.String("addr", ":8090", "Listen address for the negotiation service")
		configFile  = flag.String("config", "", "Path to negotiation config JSON file")
		archiveDir  = flag.String("archive", "", "Directory for product and transcript archives (overrides config)")
		advisorKind = flag.String("advisor", "", "Advisory provider: ollama, ollama-exec, or scripted (overrides config)")
		model       = flag.String("model", "", "Advisory model name (overrides config)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg := engine.DefaultConfig()
	if *configFile != "" {
		loaded, err := engine.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *archiveDir != "" {
		cfg.Archive.Path = *archiveDir
	}
	if *advisorKind != "" {
		cfg.Advisor.Kind = *advisorKind
	}
	if *model != "" {
		cfg.Advisor.Model = *model
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	observer := observability.NewSlogObserver(logger)
	observability.RegisterObserver("slog", observer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []api.ServiceOption{api.WithObserver(observer)}

	store, err := archive.NewStore(&cfg.Archive)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	if store != nil {
		catalog := archive.NewCatalog(store)
		if err := catalog.Bootstrap(ctx); err != nil {
			log.Fatalf("Failed to load product catalog: %v", err)
		}
		opts = append(opts, api.WithArchive(store), api.WithProductCatalog(catalog))
		logger.Info("product catalog loaded", "path", cfg.Archive.Path, "products", len(catalog.Names()))
	}

	if len(cfg.Agents) > 0 {
		registry := agent.NewRegistry()
		for name, agentCfg := range cfg.Agents {
			if err := registry.Register(name, agentCfg); err != nil {
				log.Fatalf("Failed to register agent %q: %v", name, err)
			}
		}
		opts = append(opts, api.WithRegistry(registry))
	}

	svc := api.NewService(&cfg, opts...)
	path, handler := api.NewHandler(svc)

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	fmt.Printf("haggled listening on %s (service %s)\n", *addr, path)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
