// Package validation содержит функции валидации входных данных.
package validation

import (
	"strings"
	"unicode"
)

// FieldError описывает ошибку валидации одного поля.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Result содержит все ошибки валидации одной сущности.
type Result []FieldError

// Ok сообщает, прошла ли сущность валидацию.
func (r Result) Ok() bool {
	return len(r) == 0
}

// RequiredText проверяет, что текстовое поле непустое после обрезки пробелов.
func RequiredText(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// NonNegativeAmount проверяет, что денежное поле неотрицательно.
func NonNegativeAmount(field string, value int64) *FieldError {
	if value < 0 {
		return &FieldError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// IsValidSKU проверяет формат артикула: заглавные латинские буквы,
// цифры и дефисы, например MED-PCM-500-SRP.
func IsValidSKU(sku string) bool {
	if sku == "" {
		return false
	}
	for _, ch := range sku {
		if !unicode.IsDigit(ch) && ch != '-' && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return !strings.HasPrefix(sku, "-") && !strings.HasSuffix(sku, "-")
}

// ValidateProduct проверяет все поля позиции каталога и возвращает список нарушений.
func ValidateProduct(name, sku, unit string, price int64) Result {
	var res Result

	if fe := RequiredText("name", name); fe != nil {
		res = append(res, *fe)
	}
	if fe := RequiredText("sku", sku); fe != nil {
		res = append(res, *fe)
	} else if !IsValidSKU(sku) {
		res = append(res, FieldError{Field: "sku", Reason: "invalid format"})
	}
	if fe := RequiredText("unit", unit); fe != nil {
		res = append(res, *fe)
	}
	if fe := NonNegativeAmount("price", price); fe != nil {
		res = append(res, *fe)
	}

	return res
}

// ValidateCustomer проверяет поля покупателя.
func ValidateCustomer(name string) Result {
	var res Result
	if fe := RequiredText("name", name); fe != nil {
		res = append(res, *fe)
	}
	return res
}

// ValidateNamedRecord проверяет запись справочника с обязательными именем и кодом.
func ValidateNamedRecord(name, code string) Result {
	var res Result
	if fe := RequiredText("name", name); fe != nil {
		res = append(res, *fe)
	}
	if fe := RequiredText("code", code); fe != nil {
		res = append(res, *fe)
	}
	return res
}
