package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bsx-tools/internal/api/handlers"
	"bsx-tools/internal/api/middleware"
	"bsx-tools/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	log.Info("starting bsx api",
		zap.String("archive_dir", cfg.ArchiveDir),
		zap.Int("port", cfg.Port),
	)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	archiveHandler := handlers.NewArchiveHandler(cfg.ArchiveDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/archives", archiveHandler.ListArchives)
		api.GET("/archives/:archive/settlement", archiveHandler.GetSettlement)
		api.GET("/archives/:archive/runs", archiveHandler.ListRuns)
		api.GET("/archives/:archive/runs/:runId/state", archiveHandler.GetRunState)
		api.GET("/archives/:archive/runs/:runId/dynamics", archiveHandler.ListDynamics)
		api.GET("/archives/:archive/runs/:runId/dynamics/:dynamicId/timeseries", archiveHandler.GetTimeseries)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
