package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"summercamp-backend/entity"
	"summercamp-backend/errs"
	"summercamp-backend/jwt"
	"summercamp-backend/store"
)

func (h *Handler) listClasses(w http.ResponseWriter, r *http.Request, q store.ClassQuery) {
	classes, err := h.store.Classes(r.Context(), q)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, classes)
}

// ListClasses serves both /classes and /admin/classes. Pending and denied
// classes are included in either.
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	h.listClasses(w, r, store.ClassQuery{})
}

func (h *Handler) ListClassesBySeats(w http.ResponseWriter, r *http.Request) {
	h.listClasses(w, r, store.ClassQuery{BySeatsDesc: true})
}

func (h *Handler) ListApprovedClasses(w http.ResponseWriter, r *http.Request) {
	h.listClasses(w, r, store.ClassQuery{Status: entity.StatusApproved})
}

func (h *Handler) ListInstructorClasses(w http.ResponseWriter, r *http.Request) {
	h.listClasses(w, r, store.ClassQuery{InstructorEmail: chi.URLParam(r, "email")})
}

func classID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, errs.ErrInvalidID
	}
	return id, nil
}

func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	id, err := classID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := h.store.ClassByID(r.Context(), id)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// UpdateClass applies a partial update, typically an admin's status decision.
func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	id, err := classID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	u := &entity.ClassUpdate{}
	if err := decodeJSON(w, r, u); err != nil {
		writeError(w, err)
		return
	}
	if u.IsEmpty() {
		writeError(w, errs.ErrInvalidBody)
		return
	}
	if u.Status != "" && !u.Status.Valid() {
		writeError(w, errs.ErrInvalidStatus)
		return
	}

	res, err := h.store.UpdateClass(r.Context(), id, u)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// CreateClass stores an instructor's submission as pending.
func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	c := &entity.Class{}
	if err := decodeJSON(w, r, c); err != nil {
		writeError(w, err)
		return
	}

	c.ID = primitive.NilObjectID
	c.Status = entity.StatusPending
	if c.InstructorEmail == "" {
		if claims, ok := jwt.GetClaimsFromCtx(r.Context()); ok {
			c.InstructorEmail = claims.Email
		}
	}

	res, err := h.store.InsertClass(r.Context(), c)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
