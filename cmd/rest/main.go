package main

import (
	"context"
	"log"

	"procurement-dashboard-be/internal/bootstrap"
	"procurement-dashboard-be/internal/config"
	"procurement-dashboard-be/internal/server"
	"procurement-dashboard-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Watches.Shutdown()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
