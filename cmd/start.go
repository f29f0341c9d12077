package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"folder-ingest/core/assets"
	"folder-ingest/core/config"
	"folder-ingest/core/database"
	"folder-ingest/core/ident"
	"folder-ingest/core/ingest"
	"folder-ingest/core/loader"
	"folder-ingest/core/logger"
	"folder-ingest/core/middleware/auth"
	"folder-ingest/core/middleware/rayid"

	"folder-ingest/feature/catalog"
	"folder-ingest/feature/library"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var startFolders []string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the folder ingestion server",
	Long: `Starts the HTTP server, begins ingesting the configured folders in
the background, and serves the library API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if !cfg.Ingest.IsValidSource() {
			log.Fatalf("Invalid ingest source: %q", cfg.Ingest.Source)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		folders, err := parseFolderSpecs(startFolders)
		if err != nil {
			logg.Fatal("Invalid folder flags", zap.Error(err))
		}

		// 3. Connect to Catalog Database (Optional)
		var cat *catalog.Service
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional catalog database connection failed", zap.Error(err))
		} else {
			if err := catalog.Migrate(conn); err != nil {
				logg.Fatal("Failed to migrate catalog tables", zap.Error(err))
			}
			cat = catalog.NewService(conn, logg)
			logg.Info("Connected to catalog database")
		}

		// 4. Initialize Loading Backend and Server
		backend, err := buildBackend(context.Background(), cfg)
		if err != nil {
			logg.Fatal("Failed to create loading backend", zap.Error(err))
		}
		srv := assets.NewServer(cfg.Assets, backend, logg)
		registerDecoders(srv, folders)

		// 5. Build the Folder Registry
		interner := ident.NewInterner()
		registry := ingest.NewRegistry[string](interner.Intern, logg)
		for _, f := range folders {
			if _, err := registry.Add(f); err != nil {
				logg.Fatal("Failed to register folder", zap.Error(err))
			}
		}
		if cat != nil {
			registry.OnTerminal(func(s ingest.Summary) {
				var quarantined []string
				if f, ok := registry.Get(s.Name); ok {
					quarantined = f.State().QuarantinedPaths()
				}
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := cat.Record(ctx, s, quarantined); err != nil {
					logg.Error("Failed to record ingest run", zap.Error(err))
				}
			})
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		// The mutex serializes the tick loop (writer) against the HTTP
		// readers of the registry.
		var mu sync.RWMutex
		mgr := loader.NewManager()
		mgr.Register(library.NewFeature(registry, srv, &mu, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start the Reconciliation Loop
		tickCtx, stopTicking := context.WithCancel(context.Background())
		defer stopTicking()
		go func() {
			interval := time.Duration(cfg.Ingest.PollIntervalMS) * time.Millisecond
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-tickCtx.Done():
					return
				case <-ticker.C:
					mu.Lock()
					registry.TickAll(srv)
					done := registry.Converged()
					mu.Unlock()
					if done {
						logg.Info("All folders ingested",
							zap.Strings("folders", registry.Names()))
						return
					}
				}
			}
		}()

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stopTicking()
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().StringArrayVar(&startFolders, "folder", nil,
		"Folder to ingest as name=path:suffix (repeatable)")
	RootCmd.AddCommand(startCmd)
}
