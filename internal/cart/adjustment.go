package cart

import "errors"

// ErrNegativeAmount возвращается при попытке установить отрицательную скидку или наценку.
var ErrNegativeAmount = errors.New("amount must not be negative")

// Adjustment хранит ручную скидку и сервисный сбор одной кассовой сессии.
type Adjustment struct {
	Discount      int64
	ServiceCharge int64
}

// SetDiscount устанавливает скидку. Отрицательные значения отклоняются.
func (a *Adjustment) SetDiscount(v int64) error {
	if v < 0 {
		return ErrNegativeAmount
	}
	a.Discount = v
	return nil
}

// SetServiceCharge устанавливает сервисный сбор. Отрицательные значения отклоняются.
func (a *Adjustment) SetServiceCharge(v int64) error {
	if v < 0 {
		return ErrNegativeAmount
	}
	a.ServiceCharge = v
	return nil
}

// Total вычисляет итог к оплате: subtotal − скидка + сервисный сбор.
// Итог не ограничивается нулём: скидка больше подытога даёт отрицательный итог.
func (a Adjustment) Total(subtotal int64) int64 {
	return subtotal - a.Discount + a.ServiceCharge
}

// Reset обнуляет скидку и сервисный сбор после оформления счёта.
func (a *Adjustment) Reset() {
	a.Discount = 0
	a.ServiceCharge = 0
}
