// Package checkout реализует разрешение оплаты и фиксацию счёта по корзине.
package checkout

import (
	"time"

	"github.com/mmeshcher/pos-system/internal/model"
)

// PaymentRequest описывает выбор кассира в диалоге оплаты.
type PaymentRequest struct {
	Timing    model.PaymentTiming
	Amount    int64
	DueDate   *time.Time
	Reference string
}

// ResolvePayment проверяет запрос оплаты и возвращает готовую запись об оплате.
// Функция не имеет побочных эффектов: фиксацию счёта выполняет вызывающая сторона.
//
// Немедленная оплата требует сумму не меньше итога, сдача — превышение над итогом.
// Отложенная оплата требует срок; срок в прошлом не отклоняется — минимальную
// дату контролирует только форма кассира.
func ResolvePayment(total int64, req PaymentRequest) (model.PaymentDetails, error) {
	switch req.Timing {
	case model.PaymentImmediate:
		if req.Amount < total {
			return model.PaymentDetails{}, ErrInsufficientAmount
		}
		return model.PaymentDetails{
			Timing:    model.PaymentImmediate,
			Amount:    req.Amount,
			Change:    req.Amount - total,
			Reference: req.Reference,
		}, nil

	case model.PaymentDeferred:
		if req.DueDate == nil {
			return model.PaymentDetails{}, ErrDueDateRequired
		}
		due := *req.DueDate
		return model.PaymentDetails{
			Timing:    model.PaymentDeferred,
			DueDate:   &due,
			Reference: req.Reference,
		}, nil

	default:
		return model.PaymentDetails{}, ErrUnknownTiming
	}
}
