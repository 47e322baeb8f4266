package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mstrand/todoapi/internal/auth"
	"github.com/mstrand/todoapi/internal/model"
	"github.com/mstrand/todoapi/internal/store"
)

const maxDescriptionLen = 250

var (
	errDescriptionRequired = errors.New("description is required")
	errDescriptionTooLong  = errors.New("description must be at most 250 characters")
)

type TodoHandler struct {
	todos  *store.TodoStore
	logger *slog.Logger
}

func NewTodoHandler(ts *store.TodoStore, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: ts, logger: logger}
}

// List returns the authenticated user's todos. The completed parameter only
// takes effect for the literal strings "true" and "false"; anything else is
// ignored. A non-empty q narrows to descriptions containing it.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var f store.Filter
	switch r.URL.Query().Get("completed") {
	case "true":
		v := true
		f.Completed = &v
	case "false":
		v := false
		f.Completed = &v
	}
	f.Search = r.URL.Query().Get("q")

	todos, err := h.todos.List(userID, f)
	if err != nil {
		h.logger.Error("list todos", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list todos"})
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	todo, err := h.todos.Get(auth.UserID(r.Context()), id)
	if err != nil {
		h.logger.Error("get todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get todo"})
		return
	}
	if todo == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	desc, err := validDescription(req.Description)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	todo, err := h.todos.Create(auth.UserID(r.Context()), desc, req.Completed)
	if err != nil {
		h.logger.Error("create todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create todo"})
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// Update applies a partial update: only fields present in the body change.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	var patch store.Patch
	if req.Description != nil {
		desc, err := validDescription(*req.Description)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		patch.Description = &desc
	}
	patch.Completed = req.Completed

	todo, err := h.todos.Update(auth.UserID(r.Context()), id, patch)
	if err != nil {
		h.logger.Error("update todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update todo"})
		return
	}
	if todo == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	deleted, err := h.todos.Delete(auth.UserID(r.Context()), id)
	if err != nil {
		h.logger.Error("delete todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete todo"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validDescription trims the description and enforces the length contract.
func validDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", errDescriptionRequired
	}
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "", errDescriptionTooLong
	}
	return desc, nil
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
