// Package main provides the embedded RestoLog server for desktop
// platforms. Desktop shells communicate via REST/WebSocket on
// localhost:8091; all state lives in the on-device key-value store.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/restolog/restolog/cmd/desktop/handlers"
	"github.com/restolog/restolog/internal/checklist"
	"github.com/restolog/restolog/internal/export"
	"github.com/restolog/restolog/internal/kv"
	"github.com/restolog/restolog/internal/kv/badgerkv"
	"github.com/restolog/restolog/internal/kv/sqlite"
	"github.com/restolog/restolog/internal/logging"
)

func main() {
	var (
		addr     = flag.String("addr", "localhost:8091", "listen address")
		dataDir  = flag.String("data-dir", "./data", "data directory")
		backend  = flag.String("store", "sqlite", "key-value backend: sqlite or badger")
		logLevel = flag.String("log-level", "INFO", "minimum log level")
	)
	flag.Parse()

	logging.Init(os.Stdout, logging.LogLevel(*logLevel))

	store, err := openStore(*backend, *dataDir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	repo := checklist.NewRepository(store)
	exportSvc := export.NewService(repo)
	hub := NewWSHub()

	checklistHandler := handlers.NewChecklistHandler(repo, hub)
	itemHandler := handlers.NewItemHandler(repo, hub)
	photoHandler := handlers.NewPhotoHandler(repo, hub)
	exportHandler := handlers.NewExportHandler(exportSvc, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"restolog-desktop"}`))
	})

	mux.HandleFunc("GET /checklists", checklistHandler.List)
	mux.HandleFunc("POST /checklists", checklistHandler.Create)
	mux.HandleFunc("GET /checklists/{id}", checklistHandler.Get)
	mux.HandleFunc("DELETE /checklists/{id}", checklistHandler.Delete)

	mux.HandleFunc("POST /checklists/{id}/items", itemHandler.Append)
	mux.HandleFunc("POST /checklists/{id}/items/{itemID}/toggle", itemHandler.Toggle)

	mux.HandleFunc("POST /checklists/{id}/photos", photoHandler.Add)
	mux.HandleFunc("PATCH /checklists/{id}/photos/{photoID}", photoHandler.UpdateDescription)
	mux.HandleFunc("DELETE /checklists/{id}/photos/{photoID}", photoHandler.Delete)
	mux.HandleFunc("GET /checklists/{id}/photos/{photoID}/thumbnail", photoHandler.Thumbnail)

	mux.HandleFunc("POST /export", exportHandler.Export)
	mux.HandleFunc("POST /import", exportHandler.Import)

	mux.HandleFunc("/ws", hub.HandleWebSocket)

	logging.Info("desktop server starting", map[string]interface{}{
		"addr":  *addr,
		"store": *backend,
	})
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func openStore(backend, dataDir string) (kv.Store, error) {
	switch backend {
	case "sqlite":
		return sqlite.Open(dataDir)
	case "badger":
		return badgerkv.Open(badgerkv.DefaultConfig(filepath.Join(dataDir, "badger")))
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
