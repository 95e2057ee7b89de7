package checkout

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator выдаёт номера счетов вида INV-NNNNNN по последним шести
// цифрам текущего времени в миллисекундах. Формат — соглашение отображения,
// контракт — уникальность в пределах процесса: повторный вызов в ту же
// миллисекунду получает следующее значение.
type IDGenerator struct {
	mu         sync.Mutex
	lastMillis int64
	now        func() time.Time
}

// NewIDGenerator создаёт генератор номеров счетов.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next возвращает следующий номер счёта.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.lastMillis {
		ms = g.lastMillis + 1
	}
	g.lastMillis = ms

	return fmt.Sprintf("INV-%06d", ms%1000000)
}
