// Package cart реализует корзину кассовой сессии и расчёт итоговой суммы.
package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mmeshcher/pos-system/internal/model"
)

// ErrLineNotFound возвращается при обращении к несуществующей строке корзины.
var ErrLineNotFound = errors.New("cart line not found")

// Cart хранит строки корзины в порядке добавления.
// Строки с одинаковой парой (товар, единица измерения) сливаются в одну.
// Корзина принадлежит ровно одной кассовой сессии и не защищена от конкурентного доступа.
type Cart struct {
	lines []model.CartLine
}

// New создаёт пустую корзину.
func New() *Cart {
	return &Cart{}
}

// AddLine добавляет товар в корзину.
// Если строка с той же парой (ProductID, Unit) уже есть, её количество
// увеличивается на единицу, иначе добавляется новая строка с количеством 1.
func (c *Cart) AddLine(p model.Product) model.CartLine {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID && c.lines[i].Unit == p.Unit {
			c.lines[i].Quantity++
			c.lines[i].Total = c.lines[i].Price * int64(c.lines[i].Quantity)
			return c.lines[i]
		}
	}

	line := model.CartLine{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		ProductName: p.Name,
		SKU:         p.SKU,
		Unit:        p.Unit,
		Price:       p.Price,
		Quantity:    1,
		Total:       p.Price,
	}
	c.lines = append(c.lines, line)
	return line
}

// UpdateQuantity изменяет количество в строке на единицу вверх или вниз.
// Количество не опускается ниже 1: декремент строки с количеством 1 ничего не меняет.
func (c *Cart) UpdateQuantity(lineID string, increment bool) (model.CartLine, error) {
	for i := range c.lines {
		if c.lines[i].ID != lineID {
			continue
		}
		if increment {
			c.lines[i].Quantity++
		} else if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		}
		c.lines[i].Total = c.lines[i].Price * int64(c.lines[i].Quantity)
		return c.lines[i], nil
	}
	return model.CartLine{}, ErrLineNotFound
}

// RemoveLine удаляет строку из корзины. Отсутствующая строка не считается ошибкой.
func (c *Cart) RemoveLine(lineID string) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Subtotal возвращает сумму всех строк корзины. Для пустой корзины — 0.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for i := range c.lines {
		sum += c.lines[i].Total
	}
	return sum
}

// Len возвращает количество строк в корзине.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines возвращает копию строк корзины в порядке добавления.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear очищает корзину после успешного оформления счёта.
func (c *Cart) Clear() {
	c.lines = nil
}
