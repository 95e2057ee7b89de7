package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmeshcher/pos-system/internal/checkout"
	"github.com/mmeshcher/pos-system/internal/model"
	"github.com/mmeshcher/pos-system/internal/repository"
)

func newTestService() *Service {
	return NewService(repository.NewMemoryRepository())
}

func TestHashPasswordDeterministic(t *testing.T) {
	a := hashPassword("user", "pass")
	b := hashPassword("user", "pass")
	c := hashPassword("user", "other")

	if string(a) != string(b) {
		t.Fatalf("hashPassword must be deterministic, got %x and %x", a, b)
	}
	if string(a) == string(c) {
		t.Fatalf("different passwords must produce different hashes")
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	id, err := svc.RegisterUser(ctx, "cashier", "secret")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	gotID, err := svc.AuthenticateUser(ctx, "cashier", "secret")
	if err != nil {
		t.Fatalf("AuthenticateUser error: %v", err)
	}
	if gotID != id {
		t.Fatalf("user id = %d, want %d", gotID, id)
	}

	if _, err := svc.AuthenticateUser(ctx, "cashier", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.RegisterUser(ctx, "cashier", "again"); !errors.Is(err, repository.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func findProduct(t *testing.T, svc *Service, sku string) model.Product {
	t.Helper()
	products, err := svc.SearchProducts(context.Background(), sku)
	if err != nil || len(products) != 1 {
		t.Fatalf("product %q lookup failed: %v (%d found)", sku, err, len(products))
	}
	return products[0]
}

func TestAddToCart_MergesSameProduct(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	box := findProduct(t, svc, "MED-PCM-500-BOX")

	if _, err := svc.AddToCart(ctx, sid, box.ID); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	line, err := svc.AddToCart(ctx, sid, box.ID)
	if err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}

	if line.Quantity != 2 || line.Total != 20000 {
		t.Fatalf("line = %+v, want quantity 2 total 20000", line)
	}

	state, err := svc.GetSessionState(ctx, sid)
	if err != nil {
		t.Fatalf("GetSessionState error: %v", err)
	}
	if len(state.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(state.Lines))
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	if _, err := svc.AddToCart(ctx, sid, 9999); !errors.Is(err, repository.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if _, err := svc.AddToCart(ctx, "no-session", 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSetAdjustment_ComputesTotal(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	box := findProduct(t, svc, "MED-PCM-500-BOX")
	_, _ = svc.AddToCart(ctx, sid, box.ID)
	_, _ = svc.AddToCart(ctx, sid, box.ID)

	if err := svc.SetAdjustment(ctx, sid, 2000, 500); err != nil {
		t.Fatalf("SetAdjustment error: %v", err)
	}

	state, _ := svc.GetSessionState(ctx, sid)
	if state.Subtotal != 20000 {
		t.Fatalf("subtotal = %d, want 20000", state.Subtotal)
	}
	if state.Total != 18500 {
		t.Fatalf("total = %d, want 18500", state.Total)
	}
}

func TestCheckout_ImmediateWithChange(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	box := findProduct(t, svc, "MED-PCM-500-BOX")
	for i := 0; i < 20; i++ {
		_, _ = svc.AddToCart(ctx, sid, box.ID)
	}
	if err := svc.SetAdjustment(ctx, sid, 20000, 0); err != nil {
		t.Fatalf("SetAdjustment error: %v", err)
	}

	inv, err := svc.Checkout(ctx, sid, CheckoutRequest{
		Timing:       model.PaymentImmediate,
		Amount:       200000,
		CustomerName: "John Doe",
	})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	if inv.Subtotal != 200000 || inv.Total != 180000 {
		t.Fatalf("invoice subtotal/total = %d/%d, want 200000/180000", inv.Subtotal, inv.Total)
	}
	if inv.Payment.Change != 20000 {
		t.Fatalf("change = %d, want 20000", inv.Payment.Change)
	}
	if inv.Status != model.InvoiceStatusPaid {
		t.Fatalf("status = %q, want paid", inv.Status)
	}

	// корзина очищена, корректировки сброшены
	state, _ := svc.GetSessionState(ctx, sid)
	if len(state.Lines) != 0 || state.Discount != 0 || state.Total != 0 {
		t.Fatalf("session not reset after checkout: %+v", state)
	}

	stored, err := svc.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice error: %v", err)
	}
	if stored.Total != 180000 {
		t.Fatalf("stored total = %d, want 180000", stored.Total)
	}
}

func TestCheckout_DeferredWithoutDueDate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	strip := findProduct(t, svc, "MED-AMO-500-SRP")
	_, _ = svc.AddToCart(ctx, sid, strip.ID)

	_, err := svc.Checkout(ctx, sid, CheckoutRequest{Timing: model.PaymentDeferred})
	if !errors.Is(err, checkout.ErrDueDateRequired) {
		t.Fatalf("expected ErrDueDateRequired, got %v", err)
	}

	// отказ не трогает ни корзину, ни список счетов
	state, _ := svc.GetSessionState(ctx, sid)
	if len(state.Lines) != 1 {
		t.Fatalf("cart changed after rejected checkout: %+v", state)
	}
	invoices, _ := svc.ListInvoices(ctx, repository.InvoiceFilter{})
	if len(invoices) != 0 {
		t.Fatalf("invoice created after rejected checkout")
	}
}

func TestCheckout_InsufficientAmount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	box := findProduct(t, svc, "MED-IBU-400-BOX")
	_, _ = svc.AddToCart(ctx, sid, box.ID)

	_, err := svc.Checkout(ctx, sid, CheckoutRequest{
		Timing: model.PaymentImmediate,
		Amount: 11000,
	})
	if !errors.Is(err, checkout.ErrInsufficientAmount) {
		t.Fatalf("expected ErrInsufficientAmount, got %v", err)
	}

	invoices, _ := svc.ListInvoices(ctx, repository.InvoiceFilter{})
	if len(invoices) != 0 {
		t.Fatalf("invoice created despite insufficient amount")
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	_, err := svc.Checkout(ctx, sid, CheckoutRequest{
		Timing: model.PaymentImmediate,
		Amount: 1000,
	})
	if !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckout_DeferredCreatesPendingInvoice(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	strip := findProduct(t, svc, "MED-PCM-500-SRP")
	_, _ = svc.AddToCart(ctx, sid, strip.ID)

	due := time.Now().Add(30 * 24 * time.Hour)
	inv, err := svc.Checkout(ctx, sid, CheckoutRequest{
		Timing:       model.PaymentDeferred,
		DueDate:      &due,
		CustomerName: "Jane Smith",
	})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	if inv.Status != model.InvoiceStatusPending {
		t.Fatalf("status = %q, want pending", inv.Status)
	}
	if inv.Payment.Amount != 0 {
		t.Fatalf("deferred amount = %d, want 0", inv.Payment.Amount)
	}
}

func TestUpdateInvoiceStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	strip := findProduct(t, svc, "MED-PCM-500-SRP")
	_, _ = svc.AddToCart(ctx, sid, strip.ID)

	due := time.Now().Add(24 * time.Hour)
	inv, err := svc.Checkout(ctx, sid, CheckoutRequest{Timing: model.PaymentDeferred, DueDate: &due})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	if err := svc.UpdateInvoiceStatus(ctx, inv.ID, "shipped"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}

	if err := svc.UpdateInvoiceStatus(ctx, inv.ID, model.InvoiceStatusPaid); err != nil {
		t.Fatalf("UpdateInvoiceStatus error: %v", err)
	}

	if err := svc.UpdateInvoiceStatus(ctx, inv.ID, model.InvoiceStatusPending); !errors.Is(err, repository.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSweepOverdue(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	strip := findProduct(t, svc, "MED-IBU-400-SRP")
	_, _ = svc.AddToCart(ctx, sid, strip.ID)

	// срок в прошлом проходит валидацию: минимум контролирует только форма
	due := time.Now().Add(-24 * time.Hour)
	inv, err := svc.Checkout(ctx, sid, CheckoutRequest{Timing: model.PaymentDeferred, DueDate: &due})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	svc.sweepOverdue(ctx)

	got, _ := svc.GetInvoice(ctx, inv.ID)
	if got.Status != model.InvoiceStatusOverdue {
		t.Fatalf("status after sweep = %q, want overdue", got.Status)
	}
}

func TestStartOverdueSweep_ZeroIntervalDisabled(t *testing.T) {
	svc := newTestService()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		svc.StartOverdueSweep(ctx, 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("StartOverdueSweep did not return with zero interval")
	}
}

func TestCloseSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sid := svc.CreateSession(ctx)
	if err := svc.CloseSession(ctx, sid); err != nil {
		t.Fatalf("CloseSession error: %v", err)
	}
	if err := svc.CloseSession(ctx, sid); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
