package main

import (
	"github.com/Aka-Ayaan/courtify/config"
	"github.com/Aka-Ayaan/courtify/internal/api"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	api.StartServer(cfg)
}
