package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/bulldozer-ai/bulldozer-backend/internal/config"
	"github.com/bulldozer-ai/bulldozer-backend/internal/data/db"
	server "github.com/bulldozer-ai/bulldozer-backend/internal/http"
	"github.com/bulldozer-ai/bulldozer-backend/internal/http/handlers"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
	"github.com/bulldozer-ai/bulldozer-backend/internal/services"
	"github.com/bulldozer-ai/bulldozer-backend/internal/utils"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	confPath := utils.GetEnv("RESEARCH_CONF_PATH", "conf.yaml", log)
	loader := config.NewLoader()
	conf, err := loader.Load(confPath)
	if err != nil {
		log.Warn("Could not load config file", "path", confPath, "error", err)
	} else if len(conf) > 0 {
		log.Info("Loaded configuration", "path", confPath, "keys", len(conf))
	}

	gdb, err := db.SelfCheck(log)
	if err != nil {
		log.Error("Database self-check failed", "error", err)
		os.Exit(1)
	}
	if gdb == nil {
		log.Warn("Running without persistence, write operations will fail")
	}

	log.Info("Setting up services...")
	researchService := services.NewResearchService(gdb, log)

	log.Info("Setting up router...")
	srv := server.NewServer(server.RouterConfig{
		Log:             log,
		ResearchHandler: handlers.NewResearchHandler(researchService, log),
		HealthHandler:   handlers.NewHealthHandler(),
	})

	addr := ":" + utils.GetEnv("PORT", "8000", log)
	log.Info("Starting server", "addr", addr)
	if err := srv.Run(addr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
