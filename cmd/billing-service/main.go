package main

import (
	"fmt"
	"os"

	"github.com/krasniqitringe/deel-hometask/internal/auth"
	"github.com/krasniqitringe/deel-hometask/internal/config"
	"github.com/krasniqitringe/deel-hometask/internal/db"
	"github.com/krasniqitringe/deel-hometask/internal/excel"
	httphandler "github.com/krasniqitringe/deel-hometask/internal/http"
	"github.com/krasniqitringe/deel-hometask/internal/http/middleware"
	"github.com/krasniqitringe/deel-hometask/internal/logger"
	"github.com/krasniqitringe/deel-hometask/internal/pdf"
	"github.com/krasniqitringe/deel-hometask/internal/repository"
	"github.com/krasniqitringe/deel-hometask/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	jobRepo := repository.NewJobRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	reportRepo := repository.NewReportRepository(database)

	contractService := service.NewContractService(contractRepo, jobRepo)
	billingService := service.NewBillingService(jobRepo, profileRepo, pdf.NewGenerator(), cfg)
	reportService := service.NewReportService(reportRepo, excel.NewGenerator(), cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, billingService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser, profileRepo)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting billing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
