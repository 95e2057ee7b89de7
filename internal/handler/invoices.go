package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/pos-system/internal/model"
	"github.com/mmeshcher/pos-system/internal/repository"
	"github.com/mmeshcher/pos-system/internal/service"
)

type paymentResponse struct {
	Timing    string `json:"timing"`
	Amount    int64  `json:"amount"`
	Change    int64  `json:"change,omitempty"`
	DueDate   string `json:"due_date,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type invoiceResponse struct {
	ID            string             `json:"id"`
	CreatedAt     string             `json:"created_at"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Lines         []cartLineResponse `json:"lines"`
	Subtotal      int64              `json:"subtotal"`
	Discount      int64              `json:"discount"`
	ServiceCharge int64              `json:"service_charge"`
	Total         int64              `json:"total"`
	Payment       paymentResponse    `json:"payment"`
	Status        string             `json:"status"`
}

func toInvoiceResponse(inv model.Invoice) invoiceResponse {
	lines := make([]cartLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, toCartLineResponse(l))
	}

	pay := paymentResponse{
		Timing:    string(inv.Payment.Timing),
		Amount:    inv.Payment.Amount,
		Change:    inv.Payment.Change,
		Reference: inv.Payment.Reference,
	}
	if inv.Payment.DueDate != nil {
		pay.DueDate = inv.Payment.DueDate.Format("2006-01-02")
	}

	return invoiceResponse{
		ID:            inv.ID,
		CreatedAt:     formatTime(inv.CreatedAt),
		CustomerName:  inv.CustomerName,
		Lines:         lines,
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		ServiceCharge: inv.ServiceCharge,
		Total:         inv.Total,
		Payment:       pay,
		Status:        string(inv.Status),
	}
}

// ListInvoices возвращает счета с учётом фильтров ?q= и ?status=.
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != "all" && !model.IsValidInvoiceStatus(model.InvoiceStatus(status)) {
		writeErrorMessage(w, http.StatusBadRequest, "unknown invoice status")
		return
	}
	if status == "all" {
		status = ""
	}

	invoices, err := h.service.ListInvoices(r.Context(), repository.InvoiceFilter{
		Query:  r.URL.Query().Get("q"),
		Status: model.InvoiceStatus(status),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toInvoiceResponse(inv))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetInvoice возвращает счёт по номеру.
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetInvoice(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceResponse(inv))
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateInvoiceStatus переводит счёт в новый статус по ручному действию персонала.
func (h *Handler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.service.UpdateInvoiceStatus(r.Context(), chi.URLParam(r, "invoiceID"), model.InvoiceStatus(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

var _ Service = (*service.Service)(nil)
