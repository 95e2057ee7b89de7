package repository

import (
	"context"
	"sort"

	"github.com/mmeshcher/pos-system/internal/model"
)

// CreateBrand добавляет бренд в справочник.
func (r *MemoryRepository) CreateBrand(_ context.Context, b model.Brand) (model.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextMDID++
	b.ID = r.nextMDID
	r.brands[b.ID] = b
	return b, nil
}

// ListBrands возвращает бренды, упорядоченные по идентификатору.
func (r *MemoryRepository) ListBrands(_ context.Context) ([]model.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateBrand заменяет бренд с тем же идентификатором.
func (r *MemoryRepository) UpdateBrand(_ context.Context, b model.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brands[b.ID]; !ok {
		return ErrRecordNotFound
	}
	r.brands[b.ID] = b
	return nil
}

// DeleteBrand удаляет бренд из справочника.
func (r *MemoryRepository) DeleteBrand(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brands[id]; !ok {
		return ErrRecordNotFound
	}
	delete(r.brands, id)
	return nil
}

// CreateUnit добавляет единицу измерения в справочник.
func (r *MemoryRepository) CreateUnit(_ context.Context, u model.Unit) (model.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextMDID++
	u.ID = r.nextMDID
	r.units[u.ID] = u
	return u, nil
}

// ListUnits возвращает единицы измерения, упорядоченные по идентификатору.
func (r *MemoryRepository) ListUnits(_ context.Context) ([]model.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateUnit заменяет единицу измерения с тем же идентификатором.
func (r *MemoryRepository) UpdateUnit(_ context.Context, u model.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.units[u.ID]; !ok {
		return ErrRecordNotFound
	}
	r.units[u.ID] = u
	return nil
}

// DeleteUnit удаляет единицу измерения из справочника.
func (r *MemoryRepository) DeleteUnit(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.units[id]; !ok {
		return ErrRecordNotFound
	}
	delete(r.units, id)
	return nil
}

// CreateCustomer добавляет покупателя в справочник.
func (r *MemoryRepository) CreateCustomer(_ context.Context, c model.Customer) (model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextMDID++
	c.ID = r.nextMDID
	r.customers[c.ID] = c
	return c, nil
}

// ListCustomers возвращает покупателей, упорядоченных по идентификатору.
func (r *MemoryRepository) ListCustomers(_ context.Context) ([]model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateCustomer заменяет покупателя с тем же идентификатором.
func (r *MemoryRepository) UpdateCustomer(_ context.Context, c model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[c.ID]; !ok {
		return ErrRecordNotFound
	}
	r.customers[c.ID] = c
	return nil
}

// DeleteCustomer удаляет покупателя из справочника.
func (r *MemoryRepository) DeleteCustomer(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}
