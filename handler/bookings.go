package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"summercamp-backend/entity"
)

// UpsertSelectedClass saves a pending booking under the client's booking id.
func (h *Handler) UpsertSelectedClass(w http.ResponseWriter, r *http.Request) {
	sc := &entity.SelectedClass{}
	if err := decodeJSON(w, r, sc); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.store.UpsertSelectedClass(r.Context(), chi.URLParam(r, "id"), sc)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) ListSelectedClasses(w http.ResponseWriter, r *http.Request) {
	selected, err := h.store.SelectedClasses(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, selected)
}

func (h *Handler) DeleteSelectedClass(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.DeleteSelectedClass(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// ListEnrolledClasses returns the payments recorded for an email, newest first.
func (h *Handler) ListEnrolledClasses(w http.ResponseWriter, r *http.Request) {
	payments, err := h.store.PaymentsByUser(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}
