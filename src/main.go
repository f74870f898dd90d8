package main

import (
	"net/http"

	"github.com/dnb8866/family-finances-2/src/api"
	"github.com/dnb8866/family-finances-2/src/config"
	"github.com/dnb8866/family-finances-2/src/db"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Connect to database and apply migrations
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	db.InitCache()

	// Router
	router := api.NewRouter(pool, cfg.ReadOnly)

	logrus.Infof("API server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logrus.Fatal(err)
	}
}
