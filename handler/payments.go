package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"summercamp-backend/entity"
	"summercamp-backend/errs"
	"summercamp-backend/jwt"
	"summercamp-backend/payment"
)

type intentRequest struct {
	Price float64 `json:"price"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent asks the card provider for an intent worth price
// dollars. Nothing is stored locally.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	req := &intentRequest{}
	if err := decodeJSON(w, r, req); err != nil {
		writeError(w, err)
		return
	}
	if !payment.ValidPrice(req.Price) {
		writeError(w, errs.ErrInvalidPrice)
		return
	}

	secret, err := h.payments.CreateIntent(r.Context(), payment.MinorUnits(req.Price), payment.Currency)
	if err != nil {
		requestLogger(r).Error("payment intent failed", zap.Error(err), zap.Float64("price", req.Price))
		writeError(w, errs.ErrPayment)
		return
	}

	writeJSON(w, http.StatusOK, intentResponse{ClientSecret: secret})
}

// CommitPayment records a payment, then removes the pending booking it
// settles. The two writes are independent: a recorded payment stays even
// when no booking matches or the removal fails. Both writes run to
// completion even if the client goes away in between.
func (h *Handler) CommitPayment(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r)
	ctx := context.WithoutCancel(r.Context())

	p := &entity.Payment{}
	if err := decodeJSON(w, r, p); err != nil {
		writeError(w, err)
		return
	}
	if p.ClassID == "" {
		writeError(w, errs.ErrClassIDRequired)
		return
	}
	if p.User == "" {
		if claims, ok := jwt.GetClaimsFromCtx(r.Context()); ok {
			p.User = claims.Email
		}
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	insertResult, err := h.store.InsertPayment(ctx, p)
	if err != nil {
		storeFailed(w, r, err)
		return
	}

	deleteResult, err := h.store.DeleteSettledSelection(ctx, p.ClassID, p.User)
	if err != nil {
		logger.Error("payment recorded but booking not removed",
			zap.Error(err), zap.String("classId", p.ClassID), zap.Any("paymentId", insertResult.InsertedID))
		writeError(w, errs.ErrDatabase)
		return
	}

	h.notify(ctx, logger, p)

	writeJSON(w, http.StatusOK, entity.PaymentCommit{
		InsertResult: insertResult,
		DeleteResult: deleteResult,
	})
}

// notify tells the optional event bus and mailer about a committed payment.
// Their failures are logged only.
func (h *Handler) notify(ctx context.Context, logger *zap.Logger, p *entity.Payment) {
	if h.events != nil {
		if err := h.events.PublishPayment(ctx, p); err != nil {
			logger.Warn("payment event not published", zap.Error(err), zap.String("classId", p.ClassID))
		}
	}
	if h.mailer != nil {
		if err := h.mailer.SendReceipt(ctx, p); err != nil {
			logger.Warn("receipt not sent", zap.Error(err), zap.String("classId", p.ClassID))
		}
	}
}
