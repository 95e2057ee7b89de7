package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mmeshcher/pos-system/internal/model"
)

func TestSeedCatalog(t *testing.T) {
	repo := NewMemoryRepository()

	products, err := repo.SearchProducts(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchProducts error: %v", err)
	}
	if len(products) != 6 {
		t.Fatalf("seeded products = %d, want 6", len(products))
	}
	if products[0].SKU != "MED-PCM-500-SRP" {
		t.Fatalf("first seeded SKU = %q", products[0].SKU)
	}
}

func TestSearchProducts_CaseInsensitive(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	byName, err := repo.SearchProducts(ctx, "ibuprofen")
	if err != nil {
		t.Fatalf("SearchProducts error: %v", err)
	}
	if len(byName) != 2 {
		t.Fatalf("by name = %d, want 2", len(byName))
	}

	bySKU, err := repo.SearchProducts(ctx, "med-amo")
	if err != nil {
		t.Fatalf("SearchProducts error: %v", err)
	}
	if len(bySKU) != 2 {
		t.Fatalf("by sku = %d, want 2", len(bySKU))
	}
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.CreateProduct(ctx, model.Product{
		Name: "Paracetamol 500mg", SKU: "MED-PCM-500-SRP", Unit: "Strip", Price: 2000,
	})
	if err != ErrSKUExists {
		t.Fatalf("expected ErrSKUExists, got %v", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetProduct(context.Background(), 999)
	if err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, "cashier", []byte("hash")); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if _, err := repo.CreateUser(ctx, "cashier", []byte("hash")); err != ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func testInvoice(id string, status model.InvoiceStatus, customer string) model.Invoice {
	return model.Invoice{
		ID:           id,
		CreatedAt:    time.Now(),
		CustomerName: customer,
		Lines: []model.CartLine{
			{ID: "l1", ProductID: 1, ProductName: "Paracetamol 500mg", Unit: "Strip", Price: 2000, Quantity: 3, Total: 6000},
		},
		Subtotal: 6000,
		Total:    6000,
		Payment:  model.PaymentDetails{Timing: model.PaymentImmediate, Amount: 6000},
		Status:   status,
	}
}

func TestAppendInvoice_DuplicateID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.AppendInvoice(ctx, testInvoice("INV-000001", model.InvoiceStatusPaid, "")); err != nil {
		t.Fatalf("AppendInvoice error: %v", err)
	}
	if err := repo.AppendInvoice(ctx, testInvoice("INV-000001", model.InvoiceStatusPaid, "")); err != ErrInvoiceExists {
		t.Fatalf("expected ErrInvoiceExists, got %v", err)
	}
}

func TestListInvoices_Filter(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.AppendInvoice(ctx, testInvoice("INV-230401", model.InvoiceStatusPaid, "John Doe"))
	_ = repo.AppendInvoice(ctx, testInvoice("INV-230402", model.InvoiceStatusPending, "Jane Smith"))
	_ = repo.AppendInvoice(ctx, testInvoice("INV-230403", model.InvoiceStatusOverdue, "Robert Johnson"))

	all, err := repo.ListInvoices(ctx, InvoiceFilter{})
	if err != nil {
		t.Fatalf("ListInvoices error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}
	if all[0].ID != "INV-230401" || all[2].ID != "INV-230403" {
		t.Fatalf("invoices out of append order: %v, %v", all[0].ID, all[2].ID)
	}

	byStatus, _ := repo.ListInvoices(ctx, InvoiceFilter{Status: model.InvoiceStatusPending})
	if len(byStatus) != 1 || byStatus[0].ID != "INV-230402" {
		t.Fatalf("unexpected status filter result: %+v", byStatus)
	}

	byQuery, _ := repo.ListInvoices(ctx, InvoiceFilter{Query: "jane"})
	if len(byQuery) != 1 || byQuery[0].CustomerName != "Jane Smith" {
		t.Fatalf("unexpected query filter result: %+v", byQuery)
	}

	byID, _ := repo.ListInvoices(ctx, InvoiceFilter{Query: "230403"})
	if len(byID) != 1 || byID[0].ID != "INV-230403" {
		t.Fatalf("unexpected id query result: %+v", byID)
	}
}

func TestListInvoices_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.AppendInvoice(ctx, testInvoice("INV-000010", model.InvoiceStatusPaid, ""))

	first, _ := repo.ListInvoices(ctx, InvoiceFilter{})
	first[0].Lines[0].Quantity = 99

	second, _ := repo.ListInvoices(ctx, InvoiceFilter{})
	if second[0].Lines[0].Quantity != 3 {
		t.Fatalf("stored invoice mutated through returned slice")
	}
}

func TestSetInvoiceStatus(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.AppendInvoice(ctx, testInvoice("INV-000020", model.InvoiceStatusPending, ""))

	if err := repo.SetInvoiceStatus(ctx, "INV-000020", model.InvoiceStatusPaid); err != nil {
		t.Fatalf("SetInvoiceStatus error: %v", err)
	}

	inv, _ := repo.GetInvoice(ctx, "INV-000020")
	if inv.Status != model.InvoiceStatusPaid {
		t.Fatalf("status = %q, want paid", inv.Status)
	}

	// paid → pending запрещён картой переходов
	if err := repo.SetInvoiceStatus(ctx, "INV-000020", model.InvoiceStatusPending); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := repo.SetInvoiceStatus(ctx, "INV-999999", model.InvoiceStatusPaid); err != ErrInvoiceNotFound {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestListInvoicesDueBefore(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	pastDue := now.Add(-24 * time.Hour)
	futureDue := now.Add(24 * time.Hour)

	overdue := testInvoice("INV-000030", model.InvoiceStatusPending, "")
	overdue.Payment = model.PaymentDetails{Timing: model.PaymentDeferred, DueDate: &pastDue}
	_ = repo.AppendInvoice(ctx, overdue)

	current := testInvoice("INV-000031", model.InvoiceStatusPending, "")
	current.Payment = model.PaymentDetails{Timing: model.PaymentDeferred, DueDate: &futureDue}
	_ = repo.AppendInvoice(ctx, current)

	paid := testInvoice("INV-000032", model.InvoiceStatusPaid, "")
	_ = repo.AppendInvoice(ctx, paid)

	due, err := repo.ListInvoicesDueBefore(ctx, now)
	if err != nil {
		t.Fatalf("ListInvoicesDueBefore error: %v", err)
	}
	if len(due) != 1 || due[0].ID != "INV-000030" {
		t.Fatalf("unexpected due invoices: %+v", due)
	}
}

func TestMasterDataCRUD(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	b, err := repo.CreateBrand(ctx, model.Brand{Name: "Kimia Farma", Code: "KF"})
	if err != nil {
		t.Fatalf("CreateBrand error: %v", err)
	}

	b.Name = "Kimia Farma Tbk"
	if err := repo.UpdateBrand(ctx, b); err != nil {
		t.Fatalf("UpdateBrand error: %v", err)
	}

	brands, _ := repo.ListBrands(ctx)
	if len(brands) != 1 || brands[0].Name != "Kimia Farma Tbk" {
		t.Fatalf("unexpected brands: %+v", brands)
	}

	if err := repo.DeleteBrand(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBrand error: %v", err)
	}
	if err := repo.DeleteBrand(ctx, b.ID); err != ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	units, _ := repo.ListUnits(ctx)
	if len(units) != 2 {
		t.Fatalf("seeded units = %d, want 2", len(units))
	}

	c, err := repo.CreateCustomer(ctx, model.Customer{Name: "John Doe", Phone: "+62-811-000-111"})
	if err != nil {
		t.Fatalf("CreateCustomer error: %v", err)
	}
	customers, _ := repo.ListCustomers(ctx)
	if len(customers) != 1 || customers[0].ID != c.ID {
		t.Fatalf("unexpected customers: %+v", customers)
	}
}
