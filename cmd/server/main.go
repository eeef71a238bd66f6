package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	eligibilityadapters "eduraksha/internal/eligibility/adapters"
	"eduraksha/internal/eligibility/catalog"
	eligibilityhandler "eduraksha/internal/eligibility/handler"
	eligibilitymetrics "eduraksha/internal/eligibility/metrics"
	eligibilityservice "eduraksha/internal/eligibility/service"
	"eduraksha/internal/platform/config"
	"eduraksha/internal/platform/health"
	"eduraksha/internal/platform/logger"
	"eduraksha/internal/platform/tracer"
	"eduraksha/internal/signer/jwtsigner"
	httptransport "eduraksha/internal/transport/http"
	wallethandler "eduraksha/internal/wallet/handler"
	walletmetrics "eduraksha/internal/wallet/metrics"
	walletservice "eduraksha/internal/wallet/service"
	"eduraksha/internal/wallet/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing eduraksha",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"wallet_dir", cfg.WalletDir,
	)

	kv, err := store.NewFileKV(cfg.WalletDir)
	if err != nil {
		log.Error("failed to open wallet storage", "error", err)
		os.Exit(1)
	}
	walletStore, err := store.New(kv)
	if err != nil {
		log.Error("failed to load wallet snapshot", "error", err)
		os.Exit(1)
	}

	trc := tracer.NewOTel()
	signer := jwtsigner.New(cfg.ProofKey, "eduraksha-wallet")

	walletSvc := walletservice.NewService(walletStore, signer, log,
		walletservice.WithMetrics(walletmetrics.New()),
		walletservice.WithTracer(trc),
		walletservice.WithSelfIssuedTTL(cfg.SelfIssuedTTL),
	)

	cat := catalog.New(catalog.NewStaticFetcher(), catalog.WithTTL(cfg.CatalogTTL))
	eligibilitySvc := eligibilityservice.NewService(
		cat,
		eligibilityadapters.NewWalletAdapter(walletSvc),
		log,
		eligibilityservice.WithMetrics(eligibilitymetrics.New()),
		eligibilityservice.WithTracer(trc),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("wallet_store", func() error {
		_, err := walletStore.Count(context.Background())
		return err
	})
	healthHandler.RegisterCheck("scholarship_catalog", func() error {
		_, err := cat.Scholarships(context.Background())
		return err
	})

	router := httptransport.NewRouter(httptransport.Deps{
		Wallet:      wallethandler.New(walletSvc, log),
		Eligibility: eligibilityhandler.New(eligibilitySvc, log),
		Health:      healthHandler,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
