package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"label-desk/internal/core/cache"
	"label-desk/internal/core/config"
	"label-desk/internal/core/httpclient"
	"label-desk/internal/core/logger"
	"label-desk/internal/core/proxy"
	"label-desk/internal/core/server"
	addressdomain "label-desk/internal/features/address/domain"
	addresshandler "label-desk/internal/features/address/handler"
	addressports "label-desk/internal/features/address/ports"
	addressservice "label-desk/internal/features/address/service"
	draftadapter "label-desk/internal/features/drafts/adapters"
	drafthandler "label-desk/internal/features/drafts/handler"
	draftservice "label-desk/internal/features/drafts/service"
	historyadapter "label-desk/internal/features/history/adapters"
	historyhandler "label-desk/internal/features/history/handler"
	historyservice "label-desk/internal/features/history/service"
	labeladapter "label-desk/internal/features/labels/adapters"
	labelhandler "label-desk/internal/features/labels/handler"
	labelports "label-desk/internal/features/labels/ports"
	labelservice "label-desk/internal/features/labels/service"
	provider "label-desk/internal/features/providers/adapters"
	ratehandler "label-desk/internal/features/rates/handler"
	rateports "label-desk/internal/features/rates/ports"
	rateservice "label-desk/internal/features/rates/service"

	"go.uber.org/zap"
)

// labelDownloadTimeout bounds the download of a purchased label file.
const labelDownloadTimeout = 10 * time.Second

// @title Label Desk API
// @version 1.0
// @description Parses addresses, compares shipping rates across providers, buys labels and keeps a label history.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()
	srv := server.New(cfg)

	proxySettings := proxy.Settings{
		Enabled:  cfg.Proxy.Enabled,
		Hostname: cfg.Proxy.Host,
		Port:     cfg.Proxy.Port,
		Username: cfg.Proxy.Username,
		Password: cfg.Proxy.Password,
	}
	if proxySettings.HasProxy() {
		l.Info("Provider calls routed through proxy", zap.String("proxy", proxySettings.HostPort()))
	}
	providerClient := httpclient.NewClient(cfg.Providers.Timeout(), proxySettings)

	// Initialize Providers
	var (
		rateProviders []rateports.RateProvider
		validators    []addressports.AddressValidator
		purchasers    []labelports.LabelPurchaser
		p             = cfg.Providers
	)
	if p.ShippoAPIKey != "" {
		a := provider.NewShippoAdapter(p.ShippoURL, p.ShippoAPIKey, providerClient, p.RateLimit)
		rateProviders = append(rateProviders, a)
		validators = append(validators, a)
		purchasers = append(purchasers, a)
	}
	if p.EasyPostAPIKey != "" {
		a := provider.NewEasyPostAdapter(p.EasyPostURL, p.EasyPostAPIKey, providerClient, p.RateLimit)
		rateProviders = append(rateProviders, a)
		validators = append(validators, a)
		purchasers = append(purchasers, a)
	}
	if p.ShipEngineAPIKey != "" {
		a := provider.NewShipEngineAdapter(p.ShipEngineURL, p.ShipEngineAPIKey, providerClient, p.RateLimit)
		rateProviders = append(rateProviders, a)
		validators = append(validators, a)
		purchasers = append(purchasers, a)
	}
	if p.EasyshipAPIKey != "" {
		rateProviders = append(rateProviders, provider.NewEasyshipAdapter(p.EasyshipURL, p.EasyshipAPIKey, providerClient, p.RateLimit))
	}
	l.Info("Providers configured",
		zap.Int("rate_providers", len(rateProviders)),
		zap.Int("validators", len(validators)),
		zap.Int("purchasers", len(purchasers)),
	)

	// Initialize Cache (optional)
	var appCache cache.Cache
	if cfg.Redis.URL != "" {
		redisAdapter, err := cache.NewRedisAdapter(cfg.Redis.URL, "labeldesk:")
		if err != nil {
			l.Fatal("Redis configuration invalid", zap.Error(err))
		}
		defer redisAdapter.Close()

		if err := redisAdapter.Ping(ctx); err != nil {
			l.Warn("Redis not reachable, continuing", zap.Error(err))
		}
		appCache = redisAdapter
		srv.AddHealthCheck("redis", redisAdapter.Ping)
	}

	// Initialize Address Service & Handler
	addressSvc := addressservice.NewValidationService(validators)
	addressHdl := addresshandler.NewAddressHandler(addressSvc)

	// Initialize Rate Service & Handler
	sender := addressdomain.Address{
		Name:    cfg.Sender.Name,
		Street:  cfg.Sender.Street,
		City:    cfg.Sender.City,
		State:   cfg.Sender.State,
		Zip:     cfg.Sender.Zip,
		Country: cfg.Sender.Country,
		Phone:   cfg.Sender.Phone,
		Email:   cfg.Sender.Email,
	}
	rateSvc := rateservice.NewRateService(rateProviders, rateservice.Options{
		Sender:   sender,
		Timeout:  cfg.Providers.Timeout(),
		Cache:    appCache,
		CacheTTL: time.Duration(cfg.Redis.RateCacheTTLSeconds) * time.Second,
	})
	rateHdl := ratehandler.NewRateHandler(rateSvc)

	// Initialize History Service & Handler
	historyRepo := historyadapter.NewJSONFileRepository(cfg.Labels.HistoryFile)
	historySvc := historyservice.NewHistoryService(historyRepo, cfg.Labels.HistoryLimit)
	historyHdl := historyhandler.NewHistoryHandler(historySvc)
	srv.AddHealthCheck("history", func(ctx context.Context) error {
		_, err := historyRepo.List(ctx)
		return err
	})

	// Initialize Label Storage (optional), Purchase Service & Handler
	purchaseOpts := labelservice.Options{DefaultFormat: cfg.Labels.DefaultFormat}
	if cfg.Labels.DriveCredentialsJSON != "" {
		storage, err := labeladapter.NewDriveStorage(ctx, cfg.Labels.DriveCredentialsJSON, cfg.Labels.DriveFolderID)
		if err != nil {
			l.Warn("Google Drive upload disabled", zap.Error(err))
		} else {
			purchaseOpts.Storage = storage
		}
	}
	fetcher := labeladapter.NewHTTPLabelFetcher(httpclient.NewClient(labelDownloadTimeout, proxySettings))
	purchaseSvc := labelservice.NewPurchaseService(purchasers, fetcher, historySvc, purchaseOpts)
	labelHdl := labelhandler.NewLabelHandler(purchaseSvc)

	// Register Routes
	srv.App.Post("/address/parse", addressHdl.Parse)
	srv.App.Post("/validate", addressHdl.Validate)
	srv.App.Post("/rates", rateHdl.GetRates)
	srv.App.Post("/purchase", labelHdl.Purchase)
	srv.App.Get("/history", historyHdl.List)
	srv.App.Post("/history", historyHdl.Add)

	if appCache != nil {
		draftRepo := draftadapter.NewRedisDraftRepository(appCache)
		draftSvc := draftservice.NewDraftService(draftRepo, time.Duration(cfg.Redis.DraftTTLSeconds)*time.Second)
		draftHdl := drafthandler.NewDraftHandler(draftSvc)

		srv.App.Get("/drafts/:id", draftHdl.GetDraft)
		srv.App.Put("/drafts/:id", draftHdl.SaveDraft)
		srv.App.Delete("/drafts/:id", draftHdl.RemoveDraft)
	} else {
		l.Info("REDIS_URL not set, rate cache and drafts disabled")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		l.Info("Shutting down")
		if err := srv.Shutdown(5 * time.Second); err != nil {
			l.Error("Shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
