package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"summercamp-backend/entity"
)

type route struct {
	method string
	path   string
	gates  []gate
	handle http.HandlerFunc
}

// routes is the complete API. Gates run left to right before the handler.
func (h *Handler) routes() []route {
	token := h.verifyJWT
	admin := h.requireRole(entity.RoleAdmin)
	instructor := h.requireRole(entity.RoleInstructor)
	self := h.verifySelf

	return []route{
		{http.MethodGet, "/", nil, h.Root},
		{http.MethodPost, "/jwt", nil, h.IssueToken},

		{http.MethodPut, "/users/{email}", nil, h.UpsertUser},
		{http.MethodGet, "/users", []gate{token, admin}, h.ListUsers},
		{http.MethodGet, "/users/{email}", nil, h.GetUser},
		{http.MethodGet, "/users/admin/{email}", []gate{token, self}, h.IsAdmin},
		{http.MethodGet, "/users/instructor/{email}", []gate{token, self}, h.IsInstructor},

		{http.MethodGet, "/classes", nil, h.ListClasses},
		{http.MethodGet, "/admin/classes", []gate{token, admin}, h.ListClasses},
		{http.MethodGet, "/classesByAvailableSeats", nil, h.ListClassesBySeats},
		{http.MethodGet, "/approvedClasses", nil, h.ListApprovedClasses},
		{http.MethodGet, "/classes/{id}", []gate{token}, h.GetClass},
		{http.MethodPut, "/classes/{id}", []gate{token, admin}, h.UpdateClass},
		{http.MethodPost, "/classes", []gate{token, instructor}, h.CreateClass},
		{http.MethodGet, "/instructor/classes/{email}", []gate{token, instructor}, h.ListInstructorClasses},

		{http.MethodGet, "/instructors", nil, h.ListInstructors},

		{http.MethodPut, "/selectedClasses/{id}", []gate{token}, h.UpsertSelectedClass},
		{http.MethodGet, "/selectedClasses", nil, h.ListSelectedClasses},
		{http.MethodDelete, "/selectedClasses/{id}", nil, h.DeleteSelectedClass},

		{http.MethodGet, "/enrolledClasses/{email}", []gate{token}, h.ListEnrolledClasses},
		{http.MethodPost, "/create-payment-intent", []gate{token}, h.CreatePaymentIntent},
		{http.MethodPost, "/payments", []gate{token}, h.CommitPayment},
	}
}

// Router mounts the route table behind the global middleware stack.
func (h *Handler) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	for _, rt := range h.routes() {
		var next http.Handler = rt.handle
		for i := len(rt.gates) - 1; i >= 0; i-- {
			next = rt.gates[i](next)
		}
		r.Method(rt.method, rt.path, next)
	}

	return r
}
