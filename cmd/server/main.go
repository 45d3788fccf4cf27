package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kdimtricp/swingcore/internal/api"
	"github.com/kdimtricp/swingcore/internal/banding"
	"github.com/kdimtricp/swingcore/internal/biomechanics"
	"github.com/kdimtricp/swingcore/internal/database"
	"github.com/kdimtricp/swingcore/internal/media"
	"github.com/kdimtricp/swingcore/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maxUploadSize := os.Getenv("MAX_UPLOAD_SIZE")
	if maxUploadSize == "" {
		maxUploadSize = "104857600"
	}
	maxSize, err := strconv.ParseInt(maxUploadSize, 10, 64)
	if err != nil {
		log.Fatal("Invalid MAX_UPLOAD_SIZE:", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	threshold := biomechanics.DefaultVisibilityThreshold
	if v := os.Getenv("VISIBILITY_THRESHOLD"); v != "" {
		threshold, err = strconv.ParseFloat(v, 64)
		if err != nil || threshold < 0 || threshold > 1 {
			log.Fatalf("Invalid VISIBILITY_THRESHOLD: %q", v)
		}
	}

	registry := banding.DefaultRegistry()
	if bandsFile := os.Getenv("BANDS_FILE"); bandsFile != "" {
		registry, err = banding.LoadRegistryFile(bandsFile)
		if err != nil {
			log.Fatal("Failed to load bands:", err)
		}
		log.Printf("Loaded band tables from %s", bandsFile)
	}

	// Database configuration
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var dbConfig database.Config
	dbConfig.Type = dbType

	if dbType == "postgres" {
		dbConfig.Host = os.Getenv("DB_HOST")
		if dbConfig.Host == "" {
			dbConfig.Host = "localhost"
		}

		dbPortStr := os.Getenv("DB_PORT")
		if dbPortStr == "" {
			dbPortStr = "5432"
		}
		dbPort, err := strconv.Atoi(dbPortStr)
		if err != nil {
			log.Fatal("Invalid DB_PORT:", err)
		}
		dbConfig.Port = dbPort

		dbConfig.User = os.Getenv("DB_USER")
		if dbConfig.User == "" {
			dbConfig.User = "swingcore"
		}

		dbConfig.Password = os.Getenv("DB_PASSWORD")
		if dbConfig.Password == "" {
			dbConfig.Password = "swingcore_dev"
		}

		dbConfig.Name = os.Getenv("DB_NAME")
		if dbConfig.Name == "" {
			dbConfig.Name = "swingcore"
		}
	} else {
		dbConfig.SQLitePath = os.Getenv("DB_PATH")
		if dbConfig.SQLitePath == "" {
			dbConfig.SQLitePath = "./swingcore.db"
		}
	}

	localStorage, err := storage.NewLocalStorage(uploadDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	db, err := database.NewDB(dbConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	migrations := database.Migrations()
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		log.Printf("Running database migrations from %s", path)
		migrations = os.DirFS(path)
	}
	if err := db.RunMigrations(migrations); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	prober, err := media.NewProber()
	if err != nil {
		log.Printf("Warning: video size probing disabled: %v", err)
		prober = nil
	}

	videoRepo := database.NewVideoRepository(db)
	poseRepo := database.NewPoseRepository(db)

	app := &api.App{
		Storage:       localStorage,
		DB:            db,
		VideoRepo:     videoRepo,
		PoseRepo:      poseRepo,
		SampleRepo:    database.NewSampleRepository(db),
		Sessions:      api.NewSessionCache(videoRepo, poseRepo, threshold, registry),
		Registry:      registry,
		Prober:        prober,
		MaxUploadSize: maxSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	log.Printf("Upload directory: %s", uploadDir)
	log.Printf("Database type: %s", dbType)
	if dbType == "postgres" {
		log.Printf("Database connection: %s@%s:%d/%s", dbConfig.User, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	} else {
		log.Printf("Database path: %s", dbConfig.SQLitePath)
	}
	log.Printf("Max upload size: %d bytes", maxSize)
	log.Printf("Visibility threshold: %.2f", threshold)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
