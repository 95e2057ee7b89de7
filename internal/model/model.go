// Package model содержит доменные сущности кассового сервиса.
package model

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64
	Login        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Product описывает позицию каталога: одна строка на комбинацию товара и единицы измерения.
type Product struct {
	ID        int64
	Name      string
	SKU       string
	Unit      string
	Price     int64
	CreatedAt time.Time
}

// Brand описывает бренд из справочника.
type Brand struct {
	ID   int64
	Name string
	Code string
}

// Unit описывает единицу измерения из справочника.
type Unit struct {
	ID   int64
	Name string
	Code string
}

// Customer описывает покупателя из справочника.
type Customer struct {
	ID    int64
	Name  string
	Phone string
}

// CartLine описывает одну строку корзины.
// Total всегда пересчитывается из Price и Quantity при любой мутации.
type CartLine struct {
	ID          string
	ProductID   int64
	ProductName string
	SKU         string
	Unit        string
	Price       int64
	Quantity    int
	Total       int64
}

// PaymentTiming описывает момент оплаты: сразу или с отсрочкой.
type PaymentTiming string

const (
	PaymentImmediate PaymentTiming = "immediate"
	PaymentDeferred  PaymentTiming = "deferred"
)

// PaymentDetails описывает результат разрешения оплаты.
// Amount и Change имеют смысл только для немедленной оплаты,
// DueDate обязателен только для отложенной.
type PaymentDetails struct {
	Timing    PaymentTiming
	Amount    int64
	Change    int64
	DueDate   *time.Time
	Reference string
}

// Invoice описывает счёт, зафиксированный в момент завершения оплаты.
// Строки — снимок корзины по значению; после создания меняется только Status.
type Invoice struct {
	ID            string
	CreatedAt     time.Time
	CustomerName  string
	Lines         []CartLine
	Subtotal      int64
	Discount      int64
	ServiceCharge int64
	Total         int64
	Payment       PaymentDetails
	Status        InvoiceStatus
}
