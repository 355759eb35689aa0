package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"taskman/models"
	"taskman/store"
	"taskman/utils"
)

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.CreateTask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := utils.ValidateTaskTitle(in.Title); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	task, err := h.store.Create(ctx, in)
	if err != nil {
		serverError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// ListTasks handles GET /tasks with an optional completed filter.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	var completed *bool
	if v := r.URL.Query().Get("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondDetail(w, http.StatusUnprocessableEntity, "completed must be true or false")
			return
		}
		completed = &b
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	tasks, err := h.store.List(ctx, completed)
	if err != nil {
		serverError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id}.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Task not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	task, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			respondDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// UpdateTask handles PATCH /tasks/{id}. Only fields present in the payload
// are changed.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Task not found")
		return
	}

	var in models.UpdateTask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if in.Title != nil {
		if err := utils.ValidateTaskTitle(*in.Title); err != nil {
			respondDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	task, err := h.store.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			respondDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Task not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			respondDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
