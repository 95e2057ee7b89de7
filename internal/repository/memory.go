// Package repository содержит реализацию хранилища данных в памяти процесса.
//
// Снимок исходной системы не имеет слоя персистентности: все коллекции
// живут в памяти и теряются при остановке сервиса.
package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmeshcher/pos-system/internal/model"
)

// ErrUserExists возвращается при попытке создать пользователя с уже существующим логином.
var (
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound возвращается, если позиция каталога не найдена.
	ErrProductNotFound = errors.New("product not found")
	// ErrSKUExists возвращается при попытке создать позицию с уже занятым артикулом.
	ErrSKUExists = errors.New("sku already exists")
	// ErrRecordNotFound возвращается, если запись справочника не найдена.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvoiceExists возвращается при попытке повторно записать счёт с тем же номером.
	ErrInvoiceExists = errors.New("invoice already exists")
	// ErrInvoiceNotFound возвращается, если счёт не найден.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvalidTransition возвращается при недопустимом переходе статуса счёта.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvoiceFilter описывает условия выборки счетов на экране списка.
// Query сопоставляется без учёта регистра с номером счёта и именем покупателя,
// пустой Status означает «все статусы».
type InvoiceFilter struct {
	Query  string
	Status model.InvoiceStatus
}

// MemoryRepository предоставляет доступ ко всем коллекциям сервиса в памяти.
type MemoryRepository struct {
	mu sync.RWMutex

	users      map[string]model.User
	nextUserID int64

	products      map[int64]model.Product
	productOrder  []int64
	nextProductID int64

	brands    map[int64]model.Brand
	units     map[int64]model.Unit
	customers map[int64]model.Customer
	nextMDID  int64

	invoices     map[int64]model.Invoice
	invoiceByID  map[string]int64
	invoiceOrder int64
}

// NewMemoryRepository создаёт хранилище, заполненное каталогом из снимка исходной системы.
func NewMemoryRepository() *MemoryRepository {
	r := &MemoryRepository{
		users:       make(map[string]model.User),
		products:    make(map[int64]model.Product),
		brands:      make(map[int64]model.Brand),
		units:       make(map[int64]model.Unit),
		customers:   make(map[int64]model.Customer),
		invoices:    make(map[int64]model.Invoice),
		invoiceByID: make(map[string]int64),
	}
	r.seed()
	return r
}

func (r *MemoryRepository) seed() {
	seedProducts := []model.Product{
		{Name: "Paracetamol 500mg", SKU: "MED-PCM-500-SRP", Unit: "Strip", Price: 2000},
		{Name: "Paracetamol 500mg", SKU: "MED-PCM-500-BOX", Unit: "Box", Price: 10000},
		{Name: "Ibuprofen 400mg", SKU: "MED-IBU-400-SRP", Unit: "Strip", Price: 2500},
		{Name: "Ibuprofen 400mg", SKU: "MED-IBU-400-BOX", Unit: "Box", Price: 12000},
		{Name: "Amoxicillin 500mg", SKU: "MED-AMO-500-SRP", Unit: "Strip", Price: 3000},
		{Name: "Amoxicillin 500mg", SKU: "MED-AMO-500-BOX", Unit: "Box", Price: 15000},
	}
	now := time.Now()
	for _, p := range seedProducts {
		r.nextProductID++
		p.ID = r.nextProductID
		p.CreatedAt = now
		r.products[p.ID] = p
		r.productOrder = append(r.productOrder, p.ID)
	}

	for _, u := range []model.Unit{
		{Name: "Strip", Code: "SRP"},
		{Name: "Box", Code: "BOX"},
	} {
		r.nextMDID++
		u.ID = r.nextMDID
		r.units[u.ID] = u
	}
}

// Close освобождает ресурсы хранилища. Для хранилища в памяти — no-op.
func (r *MemoryRepository) Close() error {
	return nil
}

// CreateUser создаёт нового пользователя.
func (r *MemoryRepository) CreateUser(_ context.Context, login string, passwordHash []byte) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[login]; ok {
		return 0, ErrUserExists
	}

	r.nextUserID++
	r.users[login] = model.User{
		ID:           r.nextUserID,
		Login:        login,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	return r.nextUserID, nil
}

// GetUserByLogin возвращает пользователя по логину.
func (r *MemoryRepository) GetUserByLogin(_ context.Context, login string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[login]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// CreateProduct добавляет позицию каталога и возвращает её с присвоенным идентификатором.
func (r *MemoryRepository) CreateProduct(_ context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return model.Product{}, ErrSKUExists
		}
	}

	r.nextProductID++
	p.ID = r.nextProductID
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	r.productOrder = append(r.productOrder, p.ID)
	return p, nil
}

// GetProduct возвращает позицию каталога по идентификатору.
func (r *MemoryRepository) GetProduct(_ context.Context, id int64) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return p, nil
}

// SearchProducts возвращает позиции каталога, имя или артикул которых содержит
// запрос без учёта регистра. Пустой запрос возвращает весь каталог.
func (r *MemoryRepository) SearchProducts(_ context.Context, query string) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Product, 0, len(r.productOrder))
	for _, id := range r.productOrder {
		p := r.products[id]
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateProduct заменяет позицию каталога с тем же идентификатором.
func (r *MemoryRepository) UpdateProduct(_ context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[p.ID]
	if !ok {
		return ErrProductNotFound
	}
	for id, other := range r.products {
		if id != p.ID && other.SKU == p.SKU {
			return ErrSKUExists
		}
	}
	p.CreatedAt = existing.CreatedAt
	r.products[p.ID] = p
	return nil
}

// DeleteProduct удаляет позицию каталога.
func (r *MemoryRepository) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	for i, pid := range r.productOrder {
		if pid == id {
			r.productOrder = append(r.productOrder[:i], r.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

// AppendInvoice записывает оформленный счёт. Номер счёта должен быть уникален.
func (r *MemoryRepository) AppendInvoice(_ context.Context, inv model.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoiceByID[inv.ID]; ok {
		return ErrInvoiceExists
	}

	lines := make([]model.CartLine, len(inv.Lines))
	copy(lines, inv.Lines)
	inv.Lines = lines

	r.invoiceOrder++
	r.invoices[r.invoiceOrder] = inv
	r.invoiceByID[inv.ID] = r.invoiceOrder
	return nil
}

// GetInvoice возвращает счёт по номеру.
func (r *MemoryRepository) GetInvoice(_ context.Context, id string) (model.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seq, ok := r.invoiceByID[id]
	if !ok {
		return model.Invoice{}, ErrInvoiceNotFound
	}
	return copyInvoice(r.invoices[seq]), nil
}

// ListInvoices возвращает счета в порядке оформления с учётом фильтра.
func (r *MemoryRepository) ListInvoices(_ context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seqs := make([]int64, 0, len(r.invoices))
	for seq := range r.invoices {
		seqs = append(seqs, seq)
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]model.Invoice, 0, len(seqs))
	for _, seq := range seqs {
		inv := r.invoices[seq]
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(inv.ID), q) &&
			!strings.Contains(strings.ToLower(inv.CustomerName), q) {
			continue
		}
		out = append(out, copyInvoice(inv))
	}
	return out, nil
}

// ListInvoicesDueBefore возвращает непогашенные счета, срок которых истёк к моменту t.
func (r *MemoryRepository) ListInvoicesDueBefore(_ context.Context, t time.Time) ([]model.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.Status != model.InvoiceStatusPending && inv.Status != model.InvoiceStatusPartiallyPaid {
			continue
		}
		if inv.Payment.DueDate == nil || !inv.Payment.DueDate.Before(t) {
			continue
		}
		out = append(out, copyInvoice(inv))
	}
	return out, nil
}

// SetInvoiceStatus переводит счёт в новый статус.
// Переход проверяется по карте допустимых переходов под блокировкой хранилища.
func (r *MemoryRepository) SetInvoiceStatus(_ context.Context, id string, to model.InvoiceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq, ok := r.invoiceByID[id]
	if !ok {
		return ErrInvoiceNotFound
	}

	inv := r.invoices[seq]
	if !model.CanTransition(inv.Status, to) {
		return ErrInvalidTransition
	}
	inv.Status = to
	r.invoices[seq] = inv
	return nil
}

func copyInvoice(inv model.Invoice) model.Invoice {
	lines := make([]model.CartLine, len(inv.Lines))
	copy(lines, inv.Lines)
	inv.Lines = lines
	if inv.Payment.DueDate != nil {
		due := *inv.Payment.DueDate
		inv.Payment.DueDate = &due
	}
	return inv
}
