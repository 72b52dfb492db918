package main

import (
	"fmt"
	"os"

	"fleet-dashboard-service/internal/config"
	"fleet-dashboard-service/internal/db"
	"fleet-dashboard-service/internal/excel"
	httphandler "fleet-dashboard-service/internal/http"
	"fleet-dashboard-service/internal/http/middleware"
	"fleet-dashboard-service/internal/logger"
	"fleet-dashboard-service/internal/pdf"
	"fleet-dashboard-service/internal/repository"
	"fleet-dashboard-service/internal/service"
	"fleet-dashboard-service/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	recordRepo := repository.NewRecordRepository(database, cfg.Dashboard.TripTable, cfg.Dashboard.AlcoholTable)
	sessions := session.NewStore(cfg.Dashboard.SessionTTL)

	var pdfGenerator service.PDFGenerator
	if cfg.Export.PDFFontPath != "" {
		generator, err := pdf.NewGenerator(cfg.Export.PDFFontPath)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to init pdf generator")
		}
		pdfGenerator = generator
	} else {
		appLogger.Warn().Msg("PDF_FONT_PATH not set, pdf export disabled")
	}

	dashboardService := service.NewDashboardService(recordRepo, sessions, excel.NewGenerator(), pdfGenerator, cfg.Dashboard.RankingLimit)

	handler := httphandler.NewHandler(dashboardService, appLogger)
	router := httphandler.NewRouter(handler, cfg.Environment,
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
		middleware.RateLimit(cfg.HTTP.RateLimitPerMinute, cfg.HTTP.RateLimitBurst),
		middleware.Session(),
		middleware.RequestLogger(appLogger),
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet dashboard service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
