package main

import (
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/awsembako/backoffice/internal/auth"
	"github.com/awsembako/backoffice/internal/config"
	"github.com/awsembako/backoffice/internal/handlers"
	"github.com/awsembako/backoffice/internal/queue"
	"github.com/awsembako/backoffice/internal/repository"
	"github.com/awsembako/backoffice/internal/services"
	xhttp "github.com/awsembako/backoffice/pkg/http"
	"github.com/awsembako/backoffice/pkg/logger"
	"github.com/awsembako/backoffice/pkg/pg"
	"github.com/awsembako/backoffice/pkg/prom"
	"github.com/awsembako/backoffice/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 15))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	alertQueue, err := queue.NewQueue(redisAdap, queue.QueueConfig{
		Name:              config.Get().QueueName,
		ConsumerGroup:     config.Get().QueueConsumerGroup,
		ConsumerName:      config.Get().QueueConsumerName,
		MaxRetries:        config.Get().QueueMaxRetries,
		VisibilityTimeout: config.Get().QueueVisibilityTimeout,
		PollInterval:      config.Get().QueuePollInterval,
		BatchSize:         config.Get().QueueBatchSize,
		MaxLen:            config.Get().QueueMaxLen,
		EnableDLQ:         config.Get().QueueEnableDLQ,
	})
	if err != nil {
		logger.Error("failed creating alert queue", "error", err)
	}

	if err := prom.Create("", config.Get().AppEnv, config.Get().PromNamespace); err != nil {
		logger.Error("failed creating metrics registry", "error", err)
	}
	if config.Get().AppDebugMetricsAddr != "" {
		go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	// repositories
	accountRepo := repository.NewAccountRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	entryRepo := repository.NewLedgerEntryRepository(db)
	barangRepo := repository.NewBarangRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	karyawanRepo := repository.NewKaryawanRepository(db)
	penjualanRepo := repository.NewPenjualanRepository(db)
	pembelianRepo := repository.NewPembelianRepository(db)
	pengeluaranRepo := repository.NewPengeluaranRepository(db)
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// services
	tokens := auth.NewTokenIssuer(config.Get().JwtSecret, config.Get().JwtExpiry)
	ledgerService := services.NewLedgerService(db, accountRepo, entryRepo)
	penjualanService := services.NewPenjualanService(db, penjualanRepo, barangRepo, sequenceRepo, accountRepo, entryRepo, alertQueue)
	pembelianService := services.NewPembelianService(db, pembelianRepo, barangRepo, sequenceRepo, accountRepo, entryRepo, supplierRepo)
	barangService := services.NewBarangService(barangRepo)
	mitraService := services.NewMitraService(customerRepo, supplierRepo, ledgerService)
	karyawanService := services.NewKaryawanService(karyawanRepo, ledgerService)
	pengeluaranService := services.NewPengeluaranService(pengeluaranRepo)
	reportService := services.NewReportService(reportRepo, redisAdap, config.Get().ReportCacheTTL)
	authService := services.NewAuthService(userRepo, tokens, config.Get().TotpIssuer)
	healthService := services.NewHealthService()

	// v1 handlers
	authHandler := handlers.NewAuthHandler(authService)
	barangHandler := handlers.NewBarangHandler(barangService)
	mitraHandler := handlers.NewMitraHandler(mitraService)
	karyawanHandler := handlers.NewKaryawanHandler(karyawanService)
	penjualanHandler := handlers.NewPenjualanHandler(penjualanService)
	pembelianHandler := handlers.NewPembelianHandler(pembelianService)
	pengeluaranHandler := handlers.NewPengeluaranHandler(pengeluaranService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthService)

	// everything except login and health requires a valid token
	s.Use(auth.Middleware(tokens, "/api/v1/auth/login", "/api/v1/health", "/health", "/metrics"))

	g := s.Router.Group("/api/v1")
	handlers.RegisterHealthRoutes(g, healthHandler)
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterBarangRoutes(g, barangHandler)
	handlers.RegisterMitraRoutes(g, mitraHandler)
	handlers.RegisterKaryawanRoutes(g, karyawanHandler)
	handlers.RegisterPenjualanRoutes(g, penjualanHandler)
	handlers.RegisterPembelianRoutes(g, pembelianHandler)
	handlers.RegisterPengeluaranRoutes(g, pengeluaranHandler)
	handlers.RegisterReportRoutes(g, reportHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
