// Package service реализует бизнес-логику кассового сервиса.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/mmeshcher/pos-system/internal/checkout"
	"github.com/mmeshcher/pos-system/internal/model"
	"github.com/mmeshcher/pos-system/internal/repository"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound возвращается при обращении к несуществующей кассовой сессии.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownStatus возвращается при попытке перевести счёт в неизвестный статус.
	ErrUnknownStatus = errors.New("unknown invoice status")
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	CreateUser(ctx context.Context, login string, passwordHash []byte) (int64, error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	CreateBrand(ctx context.Context, b model.Brand) (model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	UpdateBrand(ctx context.Context, b model.Brand) error
	DeleteBrand(ctx context.Context, id int64) error

	CreateUnit(ctx context.Context, u model.Unit) (model.Unit, error)
	ListUnits(ctx context.Context) ([]model.Unit, error)
	UpdateUnit(ctx context.Context, u model.Unit) error
	DeleteUnit(ctx context.Context, id int64) error

	CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	UpdateCustomer(ctx context.Context, c model.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error

	AppendInvoice(ctx context.Context, inv model.Invoice) error
	GetInvoice(ctx context.Context, id string) (model.Invoice, error)
	ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]model.Invoice, error)
	ListInvoicesDueBefore(ctx context.Context, t time.Time) ([]model.Invoice, error)
	SetInvoiceStatus(ctx context.Context, id string, to model.InvoiceStatus) error
}

// Service содержит бизнес-логику кассового сервиса.
type Service struct {
	repo  Repository
	idgen *checkout.IDGenerator

	sessions *sessionRegistry
}

// NewService создаёт новый сервис с указанным репозиторием.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		idgen:    checkout.NewIDGenerator(),
		sessions: newSessionRegistry(),
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// RegisterUser регистрирует нового пользователя.
func (s *Service) RegisterUser(ctx context.Context, login, password string) (int64, error) {
	hashed := hashPassword(login, password)
	id, err := s.repo.CreateUser(ctx, login, hashed)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AuthenticateUser проверяет логин и пароль пользователя и возвращает его идентификатор.
func (s *Service) AuthenticateUser(ctx context.Context, login, password string) (int64, error) {
	u, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return 0, err
	}

	hashed := hashPassword(login, password)
	if hex.EncodeToString(hashed) != hex.EncodeToString(u.PasswordHash) {
		return 0, ErrInvalidCredentials
	}

	return u.ID, nil
}

func hashPassword(login, password string) []byte {
	sum := sha256.Sum256([]byte(login + ":" + password))
	return sum[:]
}

// CreateProduct добавляет позицию каталога.
func (s *Service) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	return s.repo.CreateProduct(ctx, p)
}

// SearchProducts возвращает позиции каталога по запросу к имени или артикулу.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return s.repo.SearchProducts(ctx, query)
}

// UpdateProduct заменяет позицию каталога.
func (s *Service) UpdateProduct(ctx context.Context, p model.Product) error {
	return s.repo.UpdateProduct(ctx, p)
}

// DeleteProduct удаляет позицию каталога.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

// CreateBrand добавляет бренд в справочник.
func (s *Service) CreateBrand(ctx context.Context, b model.Brand) (model.Brand, error) {
	return s.repo.CreateBrand(ctx, b)
}

// ListBrands возвращает справочник брендов.
func (s *Service) ListBrands(ctx context.Context) ([]model.Brand, error) {
	return s.repo.ListBrands(ctx)
}

// UpdateBrand заменяет бренд в справочнике.
func (s *Service) UpdateBrand(ctx context.Context, b model.Brand) error {
	return s.repo.UpdateBrand(ctx, b)
}

// DeleteBrand удаляет бренд из справочника.
func (s *Service) DeleteBrand(ctx context.Context, id int64) error {
	return s.repo.DeleteBrand(ctx, id)
}

// CreateUnit добавляет единицу измерения в справочник.
func (s *Service) CreateUnit(ctx context.Context, u model.Unit) (model.Unit, error) {
	return s.repo.CreateUnit(ctx, u)
}

// ListUnits возвращает справочник единиц измерения.
func (s *Service) ListUnits(ctx context.Context) ([]model.Unit, error) {
	return s.repo.ListUnits(ctx)
}

// UpdateUnit заменяет единицу измерения в справочнике.
func (s *Service) UpdateUnit(ctx context.Context, u model.Unit) error {
	return s.repo.UpdateUnit(ctx, u)
}

// DeleteUnit удаляет единицу измерения из справочника.
func (s *Service) DeleteUnit(ctx context.Context, id int64) error {
	return s.repo.DeleteUnit(ctx, id)
}

// CreateCustomer добавляет покупателя в справочник.
func (s *Service) CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	return s.repo.CreateCustomer(ctx, c)
}

// ListCustomers возвращает справочник покупателей.
func (s *Service) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// UpdateCustomer заменяет покупателя в справочнике.
func (s *Service) UpdateCustomer(ctx context.Context, c model.Customer) error {
	return s.repo.UpdateCustomer(ctx, c)
}

// DeleteCustomer удаляет покупателя из справочника.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}
