package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/mihirzalavadiya/css-battle-showcase/handlers"
	"github.com/mihirzalavadiya/css-battle-showcase/middleware"
	"github.com/mihirzalavadiya/css-battle-showcase/services"
	"github.com/mihirzalavadiya/css-battle-showcase/storage"
	"github.com/mihirzalavadiya/css-battle-showcase/uploader"
	"github.com/mihirzalavadiya/css-battle-showcase/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // inline base64 images
	})

	app.Use(middleware.RequestLogger())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	parts := strings.Split(allowedOrigins, ",")
	for i, origin := range parts {
		parts[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(parts, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	store, backupSource := buildStore()
	svc := services.NewBattleService(store, buildUploader())

	handlers.SetupBattleRoutes(app, svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Only the file backend gets snapshots; the other backends have their
	// own durability story.
	if backupSource != "" {
		if dir := os.Getenv("BACKUP_DIR"); dir != "" {
			worker := workers.NewBackupWorker(backupSource, dir)
			if err := worker.Start(15 * time.Minute); err != nil {
				log.Fatal("failed to start backup worker:", err)
			}
			defer worker.Stop()
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("Server running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// buildStore selects the RecordStore backend from STORAGE_BACKEND. The
// second return is the path to snapshot, set only for the file backend.
func buildStore() (storage.RecordStore, string) {
	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = "file"
	}

	switch backend {
	case "file":
		path := os.Getenv("DB_FILE")
		if path == "" {
			path = "db.json"
		}
		log.Printf("Using file store at %s", path)
		return storage.NewFileStore(path), path

	case "remote":
		url := os.Getenv("JSON_STORE_URL")
		if url == "" {
			log.Fatal("JSON_STORE_URL environment variable not set")
		}
		log.Printf("Using remote store at %s", url)
		return storage.NewRemoteStore(url), ""

	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("DATABASE_URL environment variable not set")
		}
		db, err := storage.OpenPostgres(dsn)
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		gs, err := storage.NewGormStore(db)
		if err != nil {
			log.Fatal("failed to migrate database:", err)
		}
		log.Println("Using postgres store")
		return gs, ""

	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "battles.db"
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			log.Fatal("failed to open sqlite database:", err)
		}
		gs, err := storage.NewGormStore(db)
		if err != nil {
			log.Fatal("failed to migrate database:", err)
		}
		log.Printf("Using sqlite store at %s", path)
		return gs, ""

	default:
		log.Fatalf("unknown STORAGE_BACKEND %q (use: file, remote, postgres, sqlite)", backend)
		return nil, ""
	}
}

// buildUploader returns the R2 uploader when credentials are configured and
// a passthrough otherwise, so local setups work without an image host.
func buildUploader() uploader.ImageUploader {
	if os.Getenv("R2_ACCESS_KEY_ID") == "" {
		log.Println("R2 credentials not set, image payloads pass through unchanged")
		return uploader.Noop{}
	}
	up, err := uploader.NewR2Uploader()
	if err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	return up
}
