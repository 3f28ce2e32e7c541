package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"summercamp-backend/entity"
	"summercamp-backend/errs"
	"summercamp-backend/jwt"
	"summercamp-backend/log"
	"summercamp-backend/store"
)

const maxBodyBytes = 1 << 20

// Store is the slice of the document store the routes need.
type Store interface {
	UpsertUser(ctx context.Context, email string, u *entity.User) (*entity.WriteResult, error)
	Users(ctx context.Context) ([]*entity.User, error)
	UserByEmail(ctx context.Context, email string) (*entity.User, error)

	Instructors(ctx context.Context) ([]*entity.Instructor, error)

	Classes(ctx context.Context, q store.ClassQuery) ([]*entity.Class, error)
	ClassByID(ctx context.Context, id primitive.ObjectID) (*entity.Class, error)
	InsertClass(ctx context.Context, c *entity.Class) (*entity.WriteResult, error)
	UpdateClass(ctx context.Context, id primitive.ObjectID, u *entity.ClassUpdate) (*entity.WriteResult, error)

	UpsertSelectedClass(ctx context.Context, id string, sc *entity.SelectedClass) (*entity.WriteResult, error)
	SelectedClasses(ctx context.Context, email string) ([]*entity.SelectedClass, error)
	DeleteSelectedClass(ctx context.Context, id string) (*entity.WriteResult, error)
	DeleteSettledSelection(ctx context.Context, classID, user string) (*entity.WriteResult, error)

	InsertPayment(ctx context.Context, p *entity.Payment) (*entity.WriteResult, error)
	PaymentsByUser(ctx context.Context, email string) ([]*entity.Payment, error)
}

type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type Publisher interface {
	PublishPayment(ctx context.Context, p *entity.Payment) error
}

type Mailer interface {
	SendReceipt(ctx context.Context, p *entity.Payment) error
}

// Deps wires a Handler. Events and Mailer are optional.
type Deps struct {
	Store    Store
	Tokens   *jwt.JWT
	Payments PaymentProvider
	Events   Publisher
	Mailer   Mailer
}

type Handler struct {
	store    Store
	tokens   *jwt.JWT
	payments PaymentProvider
	events   Publisher
	mailer   Mailer
}

func New(d Deps) *Handler {
	return &Handler{
		store:    d.Store,
		tokens:   d.Tokens,
		payments: d.Payments,
		events:   d.Events,
		mailer:   d.Mailer,
	}
}

type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Logger.Debug("write failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errs.Status(err), errorBody{Error: true, Message: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Logger.Debug("bad request body", zap.Error(err), zap.String("path", r.URL.Path))
		return errs.ErrInvalidBody
	}
	return nil
}

// requestLogger tags the global logger with the caller's email when the
// request passed the token gate.
func requestLogger(r *http.Request) *zap.Logger {
	if c, ok := jwt.GetClaimsFromCtx(r.Context()); ok {
		return log.Logger.With(zap.String("email", c.Email))
	}
	return log.Logger
}

// storeFailed logs a store error and answers 500.
func storeFailed(w http.ResponseWriter, r *http.Request, err error) {
	requestLogger(r).Error("database error", zap.Error(err), zap.String("path", r.URL.Path))
	writeError(w, errs.ErrDatabase)
}
