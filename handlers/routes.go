package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes wires every endpoint onto a router.
func (h *Handlers) Routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger)

	router.HandleFunc("/tasks", h.ListTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id}", h.GetTask).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id}", h.UpdateTask).Methods(http.MethodPatch)
	router.HandleFunc("/tasks/{id}", h.DeleteTask).Methods(http.MethodDelete)

	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/token", h.Token).Methods(http.MethodPost)

	return router
}
