package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"summercamp-backend/entity"
	"summercamp-backend/errs"
	"summercamp-backend/jwt"
	"summercamp-backend/log"
)

type gate func(http.Handler) http.Handler

// verifyJWT admits requests carrying a valid bearer token and stores its
// claims in the request context.
func (h *Handler) verifyJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		if authorization == "" {
			writeError(w, errs.ErrUnauthorized)
			return
		}

		token, ok := strings.CutPrefix(authorization, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			writeError(w, errs.ErrUnauthorized)
			return
		}

		claims, err := h.tokens.ValidateAccessToken(token)
		if err != nil {
			log.Logger.Debug("token rejected", zap.Error(err))
			writeError(w, errs.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(jwt.WithClaims(r.Context(), claims)))
	})
}

// requireRole looks the caller up by the token's email. It must run after verifyJWT.
func (h *Handler) requireRole(role entity.Role) gate {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := jwt.GetClaimsFromCtx(r.Context())
			if !ok {
				writeError(w, errs.ErrUnauthorized)
				return
			}

			u, err := h.store.UserByEmail(r.Context(), claims.Email)
			if err != nil {
				storeFailed(w, r, err)
				return
			}

			if entity.RoleOf(u) != role {
				writeError(w, errs.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// verifySelf admits a caller only for its own {email} path parameter.
func (h *Handler) verifySelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwt.GetClaimsFromCtx(r.Context())
		if !ok {
			writeError(w, errs.ErrUnauthorized)
			return
		}

		if claims.Email != chi.URLParam(r, "email") {
			writeError(w, errs.ErrIdentityMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}
