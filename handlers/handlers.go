package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"taskman/store"
)

// requestTimeout bounds every handler's database work so a slow or gone
// client cannot pin a pool connection indefinitely.
const requestTimeout = 10 * time.Second

type Handlers struct {
	store store.Store
}

func New(s store.Store) *Handlers {
	return &Handlers{store: s}
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func respondDetail(w http.ResponseWriter, code int, detail string) {
	respondJSON(w, code, map[string]string{"detail": detail})
}

// serverError answers a generic 500 without leaking storage internals.
func serverError(w http.ResponseWriter, err error) {
	log.Println("Unexpected error:", err)
	respondDetail(w, http.StatusInternalServerError, "Internal server error")
}
