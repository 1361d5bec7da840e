package main

import (
	"context"
	"log"

	"github.com/Tigierre/contractguardian/internal/bootstrap"
	"github.com/Tigierre/contractguardian/internal/config"
	"github.com/Tigierre/contractguardian/internal/server"
	"github.com/Tigierre/contractguardian/internal/tracer"
	"github.com/Tigierre/contractguardian/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Worker
	go func() {
		log.Println("Background: Starting Analysis Worker...")
		if err := container.WorkerService.Consume(context.Background()); err != nil {
			log.Printf("Background Worker Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
