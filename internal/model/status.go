package model

// InvoiceStatus описывает статус счёта в его жизненном цикле.
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "pending"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially-paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCanceled      InvoiceStatus = "canceled"
	InvoiceStatusRefunded      InvoiceStatus = "refunded"
)

var validNext = map[InvoiceStatus]map[InvoiceStatus]bool{
	InvoiceStatusPending: {
		InvoiceStatusPaid:          true,
		InvoiceStatusPartiallyPaid: true,
		InvoiceStatusOverdue:       true,
		InvoiceStatusCanceled:      true,
	},
	InvoiceStatusPartiallyPaid: {
		InvoiceStatusPaid:     true,
		InvoiceStatusOverdue:  true,
		InvoiceStatusCanceled: true,
	},
	InvoiceStatusOverdue: {
		InvoiceStatusPaid:          true,
		InvoiceStatusPartiallyPaid: true,
		InvoiceStatusCanceled:      true,
	},
	InvoiceStatusPaid: {
		InvoiceStatusRefunded: true,
	},
	InvoiceStatusCanceled: {},
	InvoiceStatusRefunded: {},
}

// IsValidInvoiceStatus проверяет, что строка является известным статусом счёта.
func IsValidInvoiceStatus(s InvoiceStatus) bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition сообщает, разрешён ли переход счёта из статуса from в статус to.
func CanTransition(from, to InvoiceStatus) bool {
	return validNext[from][to]
}

// IsTerminal сообщает, является ли статус конечным.
func (s InvoiceStatus) IsTerminal() bool {
	return len(validNext[s]) == 0
}
