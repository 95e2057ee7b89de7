package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mmeshcher/pos-system/internal/cart"
	"github.com/mmeshcher/pos-system/internal/model"
)

// session хранит состояние одной кассовой сессии: корзину и ручные корректировки.
// Сессия принадлежит одному кассовому терминалу; реестр сериализует доступ.
type session struct {
	cart *cart.Cart
	adj  cart.Adjustment
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

// SessionState описывает видимое кассиру состояние сессии.
type SessionState struct {
	ID            string
	Lines         []model.CartLine
	Subtotal      int64
	Discount      int64
	ServiceCharge int64
	Total         int64
}

// CreateSession открывает новую кассовую сессию и возвращает её идентификатор.
func (s *Service) CreateSession(_ context.Context) string {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	id := uuid.NewString()
	s.sessions.sessions[id] = &session{cart: cart.New()}
	return id
}

// CloseSession закрывает сессию, отбрасывая незавершённую корзину без побочных эффектов.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	if _, ok := s.sessions.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions.sessions, sessionID)
	return nil
}

// AddToCart добавляет товар из каталога в корзину сессии.
// Неизвестный товар — ошибка: каталог обязан знать каждую добавляемую позицию.
func (s *Service) AddToCart(ctx context.Context, sessionID string, productID int64) (model.CartLine, error) {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return model.CartLine{}, err
	}

	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.sessions[sessionID]
	if !ok {
		return model.CartLine{}, ErrSessionNotFound
	}
	return sess.cart.AddLine(p), nil
}

// UpdateQuantity изменяет количество в строке корзины на единицу вверх или вниз.
func (s *Service) UpdateQuantity(_ context.Context, sessionID, lineID string, increment bool) (model.CartLine, error) {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.sessions[sessionID]
	if !ok {
		return model.CartLine{}, ErrSessionNotFound
	}
	return sess.cart.UpdateQuantity(lineID, increment)
}

// RemoveLine удаляет строку из корзины сессии.
func (s *Service) RemoveLine(_ context.Context, sessionID, lineID string) error {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.cart.RemoveLine(lineID)
	return nil
}

// SetAdjustment устанавливает ручную скидку и сервисный сбор сессии.
func (s *Service) SetAdjustment(_ context.Context, sessionID string, discount, serviceCharge int64) error {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if err := sess.adj.SetDiscount(discount); err != nil {
		return err
	}
	return sess.adj.SetServiceCharge(serviceCharge)
}

// GetSessionState возвращает строки корзины и расчёт итога сессии.
func (s *Service) GetSessionState(_ context.Context, sessionID string) (SessionState, error) {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.sessions[sessionID]
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}

	subtotal := sess.cart.Subtotal()
	return SessionState{
		ID:            sessionID,
		Lines:         sess.cart.Lines(),
		Subtotal:      subtotal,
		Discount:      sess.adj.Discount,
		ServiceCharge: sess.adj.ServiceCharge,
		Total:         sess.adj.Total(subtotal),
	}, nil
}
