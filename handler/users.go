package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"summercamp-backend/entity"
	"summercamp-backend/errs"
	"summercamp-backend/log"
)

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Summer Camp is running"))
}

type tokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	req := &tokenRequest{}
	if err := decodeJSON(w, r, req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" {
		writeError(w, errs.ErrEmailRequired)
		return
	}

	token, err := h.tokens.NewAccessToken(req.Email, req.Name)
	if err != nil {
		log.Logger.Error("jwt failure", zap.Error(err))
		writeError(w, errs.ErrJWT)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// UpsertUser saves a user keyed by email. It also sets roles.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	u := &entity.User{}
	if err := decodeJSON(w, r, u); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.store.UpsertUser(r.Context(), chi.URLParam(r, "email"), u)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.Users(r.Context())
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetUser answers null for an unknown email.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.UserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) hasRole(w http.ResponseWriter, r *http.Request, role entity.Role) (bool, bool) {
	u, err := h.store.UserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		storeFailed(w, r, err)
		return false, false
	}
	return entity.RoleOf(u) == role, true
}

func (h *Handler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	is, ok := h.hasRole(w, r, entity.RoleAdmin)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"admin": is})
}

func (h *Handler) IsInstructor(w http.ResponseWriter, r *http.Request) {
	is, ok := h.hasRole(w, r, entity.RoleInstructor)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"instructor": is})
}

func (h *Handler) ListInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.store.Instructors(r.Context())
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, instructors)
}
