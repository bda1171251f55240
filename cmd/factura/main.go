package main

import (
	"log"

	"github.com/yassirrachad97/Factura-sub000/internal/app"
	"github.com/yassirrachad97/Factura-sub000/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
