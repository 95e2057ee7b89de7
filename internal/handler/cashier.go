package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/pos-system/internal/model"
	"github.com/mmeshcher/pos-system/internal/service"
)

type cartLineResponse struct {
	ID          string `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Unit        string `json:"unit"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Total       int64  `json:"total"`
}

func toCartLineResponse(l model.CartLine) cartLineResponse {
	return cartLineResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		SKU:         l.SKU,
		Unit:        l.Unit,
		Price:       l.Price,
		Quantity:    l.Quantity,
		Total:       l.Total,
	}
}

type sessionResponse struct {
	ID            string             `json:"id"`
	Lines         []cartLineResponse `json:"lines"`
	Subtotal      int64              `json:"subtotal"`
	Discount      int64              `json:"discount"`
	ServiceCharge int64              `json:"service_charge"`
	Total         int64              `json:"total"`
}

func toSessionResponse(s service.SessionState) sessionResponse {
	lines := make([]cartLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, toCartLineResponse(l))
	}
	return sessionResponse{
		ID:            s.ID,
		Lines:         lines,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		ServiceCharge: s.ServiceCharge,
		Total:         s.Total,
	}
}

// CreateSession открывает новую кассовую сессию.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.service.CreateSession(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetSession возвращает корзину и расчёт итога сессии.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetSessionState(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(state))
}

// CloseSession закрывает сессию, отбрасывая незавершённую корзину.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CloseSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addLineRequest struct {
	ProductID int64 `json:"product_id"`
}

// AddLine добавляет товар из каталога в корзину сессии.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	line, err := h.service.AddToCart(r.Context(), chi.URLParam(r, "sessionID"), req.ProductID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartLineResponse(line))
}

type updateQuantityRequest struct {
	Increment bool `json:"increment"`
}

// UpdateLineQuantity изменяет количество в строке корзины на единицу вверх или вниз.
func (h *Handler) UpdateLineQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	line, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "lineID"), req.Increment)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartLineResponse(line))
}

// RemoveLine удаляет строку из корзины сессии.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveLine(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "lineID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adjustmentRequest struct {
	Discount      int64 `json:"discount"`
	ServiceCharge int64 `json:"service_charge"`
}

// SetAdjustment устанавливает ручную скидку и сервисный сбор сессии.
func (h *Handler) SetAdjustment(w http.ResponseWriter, r *http.Request) {
	var req adjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := h.service.SetAdjustment(r.Context(), sessionID, req.Discount, req.ServiceCharge); err != nil {
		h.writeError(w, err)
		return
	}

	state, err := h.service.GetSessionState(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(state))
}

type checkoutRequest struct {
	Timing       string `json:"timing"`
	Amount       int64  `json:"amount"`
	DueDate      string `json:"due_date,omitempty"`
	Reference    string `json:"reference,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

// Checkout разрешает оплату и фиксирует корзину сессии в счёт.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid due date")
			return
		}
		dueDate = &d
	}

	inv, err := h.service.Checkout(r.Context(), chi.URLParam(r, "sessionID"), service.CheckoutRequest{
		Timing:       model.PaymentTiming(req.Timing),
		Amount:       req.Amount,
		DueDate:      dueDate,
		Reference:    req.Reference,
		CustomerName: req.CustomerName,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInvoiceResponse(inv))
}
