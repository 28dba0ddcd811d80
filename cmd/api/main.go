package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"civiscore/internal/api"
	"civiscore/internal/config"
	"civiscore/internal/logger"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	s := api.NewServer(cfg, log)
	log.Info("civiscore api listening", "addr", cfg.APIAddr, "congress", cfg.CongressNumber)
	if err := http.ListenAndServe(cfg.APIAddr, s.Routes()); err != nil {
		log.Fatal("api server stopped", "error", err)
	}
}
