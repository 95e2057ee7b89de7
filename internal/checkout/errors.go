package checkout

// ValidationError описывает отклонённое действие кассира.
// Такие ошибки всегда исправимы: операция не выполняется, состояние не меняется.
type ValidationError struct {
	Reason string
}

// Error возвращает причину отклонения.
func (e *ValidationError) Error() string {
	return e.Reason
}

// ErrInsufficientAmount возвращается, когда внесённая сумма меньше итога.
var (
	ErrInsufficientAmount = &ValidationError{Reason: "insufficient amount"}
	// ErrDueDateRequired возвращается, когда для отложенной оплаты не указан срок.
	ErrDueDateRequired = &ValidationError{Reason: "due date required"}
	// ErrEmptyCart возвращается при попытке оформить счёт по пустой корзине.
	ErrEmptyCart = &ValidationError{Reason: "empty cart"}
	// ErrUnknownTiming возвращается при неизвестном моменте оплаты.
	ErrUnknownTiming = &ValidationError{Reason: "unknown payment timing"}
)
