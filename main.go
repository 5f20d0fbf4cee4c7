package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperlane-deploy/deploy-api/auth"
	"github.com/hyperlane-deploy/deploy-api/config"
	"github.com/hyperlane-deploy/deploy-api/handlers"
	"github.com/hyperlane-deploy/deploy-api/metrics"
	"github.com/hyperlane-deploy/deploy-api/parsing"
	"github.com/hyperlane-deploy/deploy-api/registry"
	"github.com/hyperlane-deploy/deploy-api/store"
	"github.com/hyperlane-deploy/deploy-api/submission"

	"github.com/Noah-Huppert/golog"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// {{{1 Context
	ctx, ctxCancel := context.WithCancel(context.Background())

	// signals holds signals received by process
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals

		ctxCancel()
	}()

	// {{{1 Logger
	logger := golog.NewStdLogger("deploy-api")

	// {{{1 Configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("failed to load configuration: %s", err.Error())
	}

	cfgStr, err := cfg.String()
	if err != nil {
		logger.Fatalf("failed to convert configuration to string: %s", err.Error())
	}
	logger.Debugf("loaded configuration: %s", cfgStr)

	if missing := cfg.MissingGitHubVars(); len(missing) > 0 {
		logger.Errorf("pull requests can not be created until these are set: %v", missing)
	}

	// {{{1 Metrics
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	m := metrics.NewMetrics(promReg)

	// {{{1 GitHub
	gh, err := registry.NewGitHubClient(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to create GitHub client: %s", err.Error())
	}

	repoHost := registry.NewGitHubRepoHost(gh, cfg, m)

	orchestrator := submission.NewOrchestrator(repoHost, cfg.GhBaseBranch,
		logger.GetChild("submission"), m)

	// {{{1 MongoDB
	var submissionStore *store.SubmissionStore

	if cfg.DbEnabled {
		mDb, err := store.Connect(ctx, cfg)
		if err != nil {
			logger.Fatalf("failed to connect to database: %s", err.Error())
		}

		s := store.NewSubmissionStore(mDb)
		submissionStore = &s
		orchestrator.Recorder = s
	}

	// {{{1 Router
	baseHandler := handlers.BaseHandler{
		Ctx:     ctx,
		Logger:  logger.GetChild("handlers"),
		Cfg:     cfg,
		Metrics: m,
	}

	router := mux.NewRouter()

	router.Methods("OPTIONS").Handler(handlers.PreFlightOptionsHandler{
		BaseHandler: baseHandler.GetChild("pre-flight-options"),
	})

	router.Handle("/health", handlers.HealthHandler{
		BaseHandler: baseHandler.GetChild("health"),
	}).Methods("GET")

	router.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})).Methods("GET")

	router.Handle("/api/create-pr", handlers.CreatePRHandler{
		BaseHandler: baseHandler.GetChild("create-pr"),
		Parser:      parsing.NewRequestParser(cfg.MaxFormBytes),
		Verifier:    auth.NewSignatureVerifier(cfg.SignatureMaxAge),
		Submitter:   orchestrator,
	}).Methods("POST")

	if submissionStore != nil {
		router.Handle("/api/submissions/{warpRouteId:.+}", handlers.SubmissionsHandler{
			BaseHandler: baseHandler.GetChild("submissions"),
			Lister:      *submissionStore,
		}).Methods("GET")
	}

	// {{{1 Start HTTP server
	server := http.Server{
		Addr: cfg.HTTPAddr,
		Handler: handlers.PanicHandler{
			BaseHandler: baseHandler.GetChild("panic"),
			Handler: handlers.ReqLoggerHandler{
				BaseHandler: baseHandler.GetChild("request"),
				Handler: handlers.MetricsHandler{
					BaseHandler: baseHandler,
					Handler: handlers.CORSHandler{
						BaseHandler: baseHandler,
						Handler:     router,
					},
				},
			},
		},
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to serve: %s", err.Error())
		}
	}()

	logger.Infof("started server on %s", cfg.HTTPAddr)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("failed to shutdown server: %s", err.Error())
	}

	logger.Info("done")
}
