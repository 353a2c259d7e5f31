package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/chat-relay-demo/modules/api"
	"github.com/example/chat-relay-demo/modules/broadcast"
	"github.com/example/chat-relay-demo/modules/registry"
	"github.com/example/chat-relay-demo/modules/relay"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Chat Relay Demo - Fiber + EventBus Pubsub ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	registryModule := registry.NewModule(app.Logger())
	relayModule := relay.NewModule(registryModule.Store(), app.Logger())
	broadcastModule := broadcast.NewModule(app.Logger())
	apiModule := api.NewModule(relayModule, app.Logger())

	// Inject broadcast hub into API module
	// (This is done manually because the hub is not exposed via ServiceContainer)
	apiModule.SetHub(broadcastModule.GetHub())

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - registry: Room membership store (ServiceProviderModule)
	// - relay: Core domain (EventEmitterModule)
	// - broadcast: Event consumer (EventConsumerModule for WebSocket delivery)
	// - api: Driving adapter (Fiber HTTP/WebSocket server, depends on registry)
	app.Register(registryModule)  // Membership store + roster services
	app.Register(relayModule)     // Room coordinator + event emitter
	app.Register(broadcastModule) // WebSocket hub + event consumer
	app.Register(apiModule)       // HTTP/WebSocket API

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber with WebSocket support")
	log.Println("  - Event Bus: NATS JetStream (internal pubsub)")
	log.Printf("  - NATS URL: %s", natsURL)
	log.Println("")
	log.Println("Event-Driven Relay:")
	log.Println("  - UserJoined events -> broadcast module -> welcome, notice, roomData")
	log.Println("  - UserLeft events -> broadcast module -> notice, roomData")
	log.Println("  - MessageSent events -> broadcast module -> room members")
	log.Println("  - LocationShared events -> broadcast module -> all clients")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("  GET    /health                    - Health check")
	log.Println("  GET    /api/v1/rooms              - List all rooms")
	log.Println("  GET    /api/v1/rooms/:room/users  - Room roster")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%s/ws):", port)
	log.Println("  Inbound frames: join, sendMessage, shareLocation")
	log.Println("  Outbound frames: message, locationMessage, roomData, ack")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
