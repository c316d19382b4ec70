package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/inventory-backend/internal/adapter/events/kafka"
	grpcadapter "github.com/simaogato/inventory-backend/internal/adapter/grpc"
	httpadapter "github.com/simaogato/inventory-backend/internal/adapter/http"
	"github.com/simaogato/inventory-backend/internal/adapter/repository/memory"
	"github.com/simaogato/inventory-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/inventory-backend/internal/adapter/repository/remote"
	"github.com/simaogato/inventory-backend/internal/config"
	"github.com/simaogato/inventory-backend/internal/domain"
	"github.com/simaogato/inventory-backend/internal/ledger"
	"github.com/simaogato/inventory-backend/internal/usecase/catalog"
	"github.com/simaogato/inventory-backend/internal/usecase/submission"
)

const defaultEnvFile = ".env"

func main() {
	// 1. Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), defaultEnvFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize the product store
	store, closeStore, err := openProductStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open product store: %v", err)
	}
	defer closeStore()
	log.Printf("Product store backend: %s", cfg.Store.Backend)

	// 3. Initialize the event publisher (optional)
	var publisher domain.EventPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Printf("Failed to close kafka publisher: %v", err)
			}
		}()
		publisher = kafkaPublisher
		log.Printf("Publishing events to %s on %v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	// 4. Initialize Services (Use Cases)
	calculator, err := domain.NewPricingCalculator(cfg.TaxRate)
	if err != nil {
		log.Fatalf("Failed to create pricing calculator: %v", err)
	}
	submissionService := submission.NewSubmissionService(ledger.NewLedger(), calculator, store, publisher)
	catalogService := catalog.NewCatalogService(store)

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)
	grpcadapter.RegisterInventoryServiceServer(grpcServer, grpcadapter.NewServer(submissionService, catalogService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// 6. Start HTTP Server
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpadapter.NewServer(submissionService, catalogService).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, httpServer)
}

// openProductStore creates the configured product store and its cleanup function
func openProductStore(ctx context.Context, cfg *config.Config) (domain.ProductStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := postgres.NewDB(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}
		return postgres.NewProductRepository(db), closeDB, nil

	case config.StoreRemote:
		client := &http.Client{Timeout: 10 * time.Second}
		return remote.NewProductStore(cfg.Store.RemoteURL, client), func() {}, nil

	default:
		return memory.NewProductStore(), func() {}, nil
	}
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(grpcServer *grpclib.Server, httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")
}
