package main

import (
	"net/http"
	"os"

	"github.com/pagelab/pagelab/internal/config"
	"github.com/pagelab/pagelab/internal/database"
	"github.com/pagelab/pagelab/internal/documents"
	"github.com/pagelab/pagelab/internal/pages"
	"github.com/pagelab/pagelab/internal/server"
	"github.com/pagelab/pagelab/internal/storage"
	"github.com/pagelab/pagelab/pkg/logging"
	"github.com/pagelab/pagelab/pkg/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if err := cfg.Finalize(); err != nil {
		fail(err)
	}

	logger := logging.New(&cfg.Logging)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, logger); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	maxUpload := cfg.Storage.MaxUploadSizeBytes()
	composer := pages.NewComposer(logger)
	docs := documents.New(db, store, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.Register(mux, cfg.Server.BasePath,
		pages.NewHandler(composer, logger, maxUpload).Routes(),
		documents.NewHandler(docs, composer, logger, maxUpload).Routes(),
	)

	srv := server.New(cfg, mux, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func fail(err error) {
	os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(1)
}
