package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"taskman/models"
	"taskman/store"
	"taskman/utils"
)

// Register handles POST /register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := utils.ValidateCredentials(creds.Username, creds.Password); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	hash, err := utils.HashPassword(creds.Password)
	if err != nil {
		serverError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.store.CreateUser(ctx, creds.Username, hash)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			respondDetail(w, http.StatusBadRequest, "user already exists")
			return
		}
		serverError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Token handles POST /token. The payload is form-encoded, and the issued
// token is the username itself: a stub, not a security mechanism.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			unauthorized(w)
			return
		}
		serverError(w, err)
		return
	}
	if !utils.CheckPasswordHash(password, user.HashedPassword) {
		unauthorized(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": user.Username,
		"token_type":   "bearer",
	})
}

// unauthorized answers the same way for an unknown username and a wrong
// password, so the response does not reveal which one it was.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respondDetail(w, http.StatusUnauthorized, "Incorrect username or password")
}
