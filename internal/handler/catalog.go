package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/pos-system/internal/model"
	"github.com/mmeshcher/pos-system/internal/validation"
)

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

type productRequest struct {
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Unit  string `json:"unit"`
	Price int64  `json:"price"`
}

type productResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Unit  string `json:"unit"`
	Price int64  `json:"price"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, SKU: p.SKU, Unit: p.Unit, Price: p.Price}
}

// ListProducts возвращает каталог, при ?q= — отфильтрованный по имени или артикулу.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateProduct добавляет позицию каталога.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if res := validation.ValidateProduct(req.Name, req.SKU, req.Unit, req.Price); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	p, err := h.service.CreateProduct(r.Context(), model.Product{
		Name:  req.Name,
		SKU:   req.SKU,
		Unit:  req.Unit,
		Price: req.Price,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// UpdateProduct заменяет позицию каталога.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if res := validation.ValidateProduct(req.Name, req.SKU, req.Unit, req.Price); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	err := h.service.UpdateProduct(r.Context(), model.Product{
		ID:    id,
		Name:  req.Name,
		SKU:   req.SKU,
		Unit:  req.Unit,
		Price: req.Price,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteProduct удаляет позицию каталога.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type namedRecordRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CreateBrand добавляет бренд в справочник.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req namedRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if res := validation.ValidateNamedRecord(req.Name, req.Code); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	b, err := h.service.CreateBrand(r.Context(), model.Brand{Name: req.Name, Code: req.Code})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// ListBrands возвращает справочник брендов.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

// UpdateBrand заменяет бренд в справочнике.
func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req namedRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if res := validation.ValidateNamedRecord(req.Name, req.Code); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	if err := h.service.UpdateBrand(r.Context(), model.Brand{ID: id, Name: req.Name, Code: req.Code}); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DeleteBrand удаляет бренд из справочника.
func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteBrand(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateUnit добавляет единицу измерения в справочник.
func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req namedRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if res := validation.ValidateNamedRecord(req.Name, req.Code); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	u, err := h.service.CreateUnit(r.Context(), model.Unit{Name: req.Name, Code: req.Code})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// ListUnits возвращает справочник единиц измерения.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.ListUnits(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

// UpdateUnit заменяет единицу измерения в справочнике.
func (h *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req namedRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if res := validation.ValidateNamedRecord(req.Name, req.Code); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	if err := h.service.UpdateUnit(r.Context(), model.Unit{ID: id, Name: req.Name, Code: req.Code}); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DeleteUnit удаляет единицу измерения из справочника.
func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteUnit(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateCustomer добавляет покупателя в справочник.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if res := validation.ValidateCustomer(req.Name); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	c, err := h.service.CreateCustomer(r.Context(), model.Customer{Name: req.Name, Phone: req.Phone})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ListCustomers возвращает справочник покупателей.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// UpdateCustomer заменяет покупателя в справочнике.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if res := validation.ValidateCustomer(req.Name); !res.Ok() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": res})
		return
	}

	if err := h.service.UpdateCustomer(r.Context(), model.Customer{ID: id, Name: req.Name, Phone: req.Phone}); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DeleteCustomer удаляет покупателя из справочника.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteCustomer(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
