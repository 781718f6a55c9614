package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/pranav06082004/Authen-X/internal/app/server"
	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/config"
	"github.com/pranav06082004/Authen-X/internal/gateway"
	"github.com/pranav06082004/Authen-X/internal/logger"
	"github.com/pranav06082004/Authen-X/internal/repository"
	"github.com/pranav06082004/Authen-X/internal/storage"
	"github.com/pranav06082004/Authen-X/internal/worker"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	log := logger.New()
	defer func() {
		_ = log.Log.Sync()
	}()

	err := log.Init(options.LogLevel)
	zapLogger := log.Log
	if err != nil {
		panic(err)
	}

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var s service.Storage

	if options.DatabaseDSN != "" {
		zapLogger.Info("using db", zap.String("dsn", options.DatabaseDSN))
		db := repository.InitDB(options.DatabaseDSN, zapLogger)
		defer db.Close()
		s = repository.CreateAnalysisRepository(db, zapLogger)
	} else {
		zapLogger.Info("using in memory storage")

		s, err = storage.CreateMemoryStorage()
		if err != nil {
			panic(err)
		}
	}

	var rdb *redis.Client
	if options.RedisURL != "" {
		rdb = redis.NewClient(&redis.Options{Addr: options.RedisURL})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			zapLogger.Info("redis connected", zap.String("addr", options.RedisURL))
		}
	}

	if options.GatewayAPIKey == "" {
		zapLogger.Fatal("GATEWAY_API_KEY is not configured")
	}

	gatewayClient := gateway.NewClient(options.GatewayURL, options.GatewayAPIKey, options.GatewayModel, zapLogger)
	zapLogger.Info("model gateway configured",
		zap.String("url", options.GatewayURL),
		zap.String("model", options.GatewayModel),
	)

	auth := service.NewAuth(s, options.JWTSecret)
	analysisService := service.NewAnalysis(s, gatewayClient, zapLogger)

	retention := worker.NewRetentionWorker(zapLogger, s, options.RetentionDays)
	go retention.Run(context.Background())

	r := server.Init(zapLogger, auth, analysisService, rdb, options.RateLimitPerMinute)

	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cache-dir"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist("authenx.app", "www.authenx.app"),
		}
		srv := &http.Server{
			Addr:      ":443",
			Handler:   r,
			TLSConfig: manager.TLSConfig(),
		}
		zapLogger.Info("Server is running with TLS", zap.String("addr", options.Addr))
		srv.ListenAndServeTLS("", "")
	} else {
		zapLogger.Info("Server is running", zap.String("addr", options.Addr))
		err = http.ListenAndServe(options.Addr, r)

		if err != nil {
			panic(err)
		}
	}
}
