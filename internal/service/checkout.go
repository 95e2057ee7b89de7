package service

import (
	"context"
	"time"

	"github.com/mmeshcher/pos-system/internal/checkout"
	"github.com/mmeshcher/pos-system/internal/model"
	"github.com/mmeshcher/pos-system/internal/repository"
)

// CheckoutRequest описывает данные диалога оплаты при оформлении счёта.
type CheckoutRequest struct {
	Timing       model.PaymentTiming
	Amount       int64
	DueDate      *time.Time
	Reference    string
	CustomerName string
}

// Checkout разрешает оплату и фиксирует корзину сессии в счёт.
//
// Любой отказ валидации происходит до записи счёта и оставляет сессию
// нетронутой. Корзина очищается и корректировки сбрасываются только после
// успешной записи счёта — это единственный атомарный шаг операции.
func (s *Service) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (model.Invoice, error) {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.sessions[sessionID]
	if !ok {
		return model.Invoice{}, ErrSessionNotFound
	}

	// пустая корзина отклоняется до разрешения оплаты,
	// как исходная система не открывает диалог оплаты без товаров
	if sess.cart.Len() == 0 {
		return model.Invoice{}, checkout.ErrEmptyCart
	}

	total := sess.adj.Total(sess.cart.Subtotal())
	pay, err := checkout.ResolvePayment(total, checkout.PaymentRequest{
		Timing:    req.Timing,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Reference: req.Reference,
	})
	if err != nil {
		return model.Invoice{}, err
	}

	inv, err := checkout.Finalize(sess.cart, sess.adj, s.idgen.Next(), req.CustomerName, pay, time.Now())
	if err != nil {
		return model.Invoice{}, err
	}

	if err := s.repo.AppendInvoice(ctx, inv); err != nil {
		return model.Invoice{}, err
	}

	sess.cart.Clear()
	sess.adj.Reset()
	return inv, nil
}

// ListInvoices возвращает счета с учётом текстового фильтра и фильтра по статусу.
func (s *Service) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]model.Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

// GetInvoice возвращает счёт по номеру.
func (s *Service) GetInvoice(ctx context.Context, id string) (model.Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

// UpdateInvoiceStatus переводит счёт в новый статус по ручному действию персонала.
func (s *Service) UpdateInvoiceStatus(ctx context.Context, id string, to model.InvoiceStatus) error {
	if !model.IsValidInvoiceStatus(to) {
		return ErrUnknownStatus
	}
	return s.repo.SetInvoiceStatus(ctx, id, to)
}

// StartOverdueSweep запускает фоновый процесс перевода просроченных счетов в overdue.
// Непогашенные счета, срок которых истёк, переводятся по тикеру до отмены контекста.
func (s *Service) StartOverdueSweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweepOverdue(ctx)
			}
		}
	}()
}

func (s *Service) sweepOverdue(ctx context.Context) {
	due, err := s.repo.ListInvoicesDueBefore(ctx, time.Now())
	if err != nil {
		return
	}

	for _, inv := range due {
		_ = s.repo.SetInvoiceStatus(ctx, inv.ID, model.InvoiceStatusOverdue)
	}
}
