package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	editingapp "motor-editor/internal/editing/application"
	editinghttp "motor-editor/internal/editing/interfaces/http"
	motors "motor-editor/internal/motors/domain"
	"motor-editor/internal/motors/infrastructure/memory"
	motorpostgres "motor-editor/internal/motors/infrastructure/postgres"
	"motor-editor/internal/motors/infrastructure/yamlfile"
	"motor-editor/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	editorCfg, err := editingapp.LoadConfig()
	if err != nil {
		logger.Fatalf("editor config error: %v", err)
	}

	repo, closeRepo := openRepository(cfg, logger)
	defer closeRepo()

	session, err := editingapp.NewSession(editorCfg, logger, editingapp.WithRepository(repo))
	if err != nil {
		logger.Fatalf("session error: %v", err)
	}
	if cfg.MotorFile != "" {
		motor, err := yamlfile.ReadFile(cfg.MotorFile)
		if err != nil {
			logger.Fatalf("motor file error: %v", err)
		}
		if err := session.Load(motor); err != nil {
			logger.Fatalf("motor file invalid: %v", err)
		}
		logger.Printf("loaded motor %s (%s) from %s", motor.ID, motor.Name, cfg.MotorFile)
	}

	metrics.Init(session, logger)

	editingHandler, err := editinghttp.NewHandler(session, repo, logger)
	if err != nil {
		logger.Fatalf("editing handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", editingHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           loggingMiddleware(mux, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL       string
	MotorDir          string
	MotorFile         string
	HTTPAddr          string
	ReadHeaderTimeout time.Duration
}

func loadConfig() config {
	return config{
		DatabaseURL:       getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		MotorDir:          getenvDefault("MOTOR_DIR", ""),
		MotorFile:         getenvDefault("MOTOR_FILE", ""),
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		ReadHeaderTimeout: getenvDuration("HTTP_READ_HEADER_TIMEOUT", 10*time.Second),
	}
}

// openRepository picks Postgres, then a YAML directory, then memory.
func openRepository(cfg config, logger *log.Logger) (motors.Repository, func()) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
		logger.Printf("motor store: postgres")
		return motorpostgres.NewMotorRepository(db), func() { _ = db.Close() }
	case cfg.MotorDir != "":
		repo, err := yamlfile.NewDirRepository(cfg.MotorDir)
		if err != nil {
			logger.Fatalf("motor dir error: %v", err)
		}
		logger.Printf("motor store: yaml directory %s", cfg.MotorDir)
		return repo, func() {}
	default:
		logger.Printf("motor store: memory")
		return memory.NewMotorRepository(), func() {}
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
