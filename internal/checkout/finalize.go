package checkout

import (
	"time"

	"github.com/mmeshcher/pos-system/internal/cart"
	"github.com/mmeshcher/pos-system/internal/model"
)

// Finalize фиксирует текущую корзину и запись об оплате в неизменяемый счёт.
// Пустая корзина отклоняется до создания счёта. Строки копируются по значению,
// поэтому последующие мутации корзины не затрагивают счёт.
//
// Начальный статус определяется моментом оплаты: немедленная оплата сразу
// даёт paid, отложенная — pending до погашения. Запись счёта в хранилище и
// очистку корзины выполняет вызывающая сторона.
func Finalize(c *cart.Cart, adj cart.Adjustment, id, customer string, pay model.PaymentDetails, now time.Time) (model.Invoice, error) {
	if c.Len() == 0 {
		return model.Invoice{}, ErrEmptyCart
	}

	status := model.InvoiceStatusPending
	if pay.Timing == model.PaymentImmediate {
		status = model.InvoiceStatusPaid
	}

	subtotal := c.Subtotal()

	return model.Invoice{
		ID:            id,
		CreatedAt:     now,
		CustomerName:  customer,
		Lines:         c.Lines(),
		Subtotal:      subtotal,
		Discount:      adj.Discount,
		ServiceCharge: adj.ServiceCharge,
		Total:         adj.Total(subtotal),
		Payment:       pay,
		Status:        status,
	}, nil
}
