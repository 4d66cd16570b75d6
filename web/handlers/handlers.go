// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/mdhender/grpsum/model"
	"github.com/mdhender/grpsum/renderer"
)

// Store defines the store operations needed by the handlers.
type Store interface {
	LatestInput(ctx context.Context) (*model.Input, error)
	GetResult(ctx context.Context, inputID int64) (*model.Result, error)
	GroupsByInput(ctx context.Context, inputID int64) ([]*model.Group, error)
	TopGroups(ctx context.Context, inputID int64, n int) ([]*model.Group, error)
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store    Store
	renderer *renderer.Renderer
}

// New creates a new Handlers with the given store and renderer.
func New(s Store, r *renderer.Renderer) *Handlers {
	return &Handlers{store: s, renderer: r}
}

// Index renders the summary page for an input. The input is taken from
// ?input=, defaulting to the latest one recorded.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	inputID, ok := h.inputID(w, r)
	if !ok {
		return
	}
	result, err := h.store.GetResult(r.Context(), inputID)
	if err != nil {
		log.Printf("index: input %d: %v", inputID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	} else if result == nil {
		http.NotFound(w, r)
		return
	}
	list, err := h.store.GroupsByInput(r.Context(), inputID)
	if err != nil {
		log.Printf("index: input %d: %v", inputID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Page(*result, list).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// TopGroups returns the ?n= (default 3) groups with the largest sums as JSON.
func (h *Handlers) TopGroups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n := 3
	if s := r.URL.Query().Get("n"); s != "" {
		var err error
		if n, err = strconv.Atoi(s); err != nil || n < 1 {
			http.Error(w, "Invalid n", http.StatusBadRequest)
			return
		}
	}
	inputID, ok := h.inputID(w, r)
	if !ok {
		return
	}
	list, err := h.store.TopGroups(r.Context(), inputID, n)
	if err != nil {
		log.Printf("top: input %d: %v", inputID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		log.Printf("top: encode: %v", err)
	}
}

// inputID resolves ?input= or the latest input. It writes the error
// response and returns false when there is no input to show.
func (h *Handlers) inputID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if s := r.URL.Query().Get("input"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "Invalid input", http.StatusBadRequest)
			return 0, false
		}
		return id, true
	}
	in, err := h.store.LatestInput(r.Context())
	if err != nil {
		log.Printf("latest input: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return 0, false
	} else if in == nil {
		http.NotFound(w, r)
		return 0, false
	}
	return in.ID, true
}
