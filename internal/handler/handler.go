// Package handler содержит HTTP-обработчики API кассового сервиса.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/pos-system/internal/cart"
	"github.com/mmeshcher/pos-system/internal/checkout"
	"github.com/mmeshcher/pos-system/internal/middleware"
	"github.com/mmeshcher/pos-system/internal/model"
	"github.com/mmeshcher/pos-system/internal/repository"
	"github.com/mmeshcher/pos-system/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	RegisterUser(ctx context.Context, login, password string) (int64, error)
	AuthenticateUser(ctx context.Context, login, password string) (int64, error)

	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	CreateBrand(ctx context.Context, b model.Brand) (model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	UpdateBrand(ctx context.Context, b model.Brand) error
	DeleteBrand(ctx context.Context, id int64) error

	CreateUnit(ctx context.Context, u model.Unit) (model.Unit, error)
	ListUnits(ctx context.Context) ([]model.Unit, error)
	UpdateUnit(ctx context.Context, u model.Unit) error
	DeleteUnit(ctx context.Context, id int64) error

	CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	UpdateCustomer(ctx context.Context, c model.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error

	CreateSession(ctx context.Context) string
	CloseSession(ctx context.Context, sessionID string) error
	AddToCart(ctx context.Context, sessionID string, productID int64) (model.CartLine, error)
	UpdateQuantity(ctx context.Context, sessionID, lineID string, increment bool) (model.CartLine, error)
	RemoveLine(ctx context.Context, sessionID, lineID string) error
	SetAdjustment(ctx context.Context, sessionID string, discount, serviceCharge int64) error
	GetSessionState(ctx context.Context, sessionID string) (service.SessionState, error)
	Checkout(ctx context.Context, sessionID string, req service.CheckoutRequest) (model.Invoice, error)

	ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, id string) (model.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id string, to model.InvoiceStatus) error
}

// Handler реализует HTTP-обработчики API кассового сервиса.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeError переводит доменные ошибки в HTTP-статусы:
// отклонённые действия кассира — 422, отсутствующие сущности — 404,
// конфликты — 409, всё неожиданное — 500 с записью в лог.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ve *checkout.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErrorMessage(w, http.StatusUnprocessableEntity, ve.Reason)
	case errors.Is(err, cart.ErrNegativeAmount),
		errors.Is(err, service.ErrUnknownStatus):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrRecordNotFound),
		errors.Is(err, repository.ErrInvoiceNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrSKUExists),
		errors.Is(err, repository.ErrUserExists),
		errors.Is(err, repository.ErrInvoiceExists),
		errors.Is(err, repository.ErrInvalidTransition):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register обрабатывает регистрацию нового пользователя.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	userID, err := h.service.RegisterUser(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
			return
		}
		h.logger.Error("register user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, userID)
	w.WriteHeader(http.StatusOK)
}

// Login выполняет аутентификацию пользователя и установку cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	userID, err := h.service.AuthenticateUser(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		h.logger.Error("login user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, userID)
	w.WriteHeader(http.StatusOK)
}

// Logout сбрасывает cookie авторизации текущего пользователя.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
