package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// MemoryStore keeps users and products in process memory. It enforces the
// same unique keys as the Postgres schema and is used when no DSN is configured.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[int64]domain.User
	usersByEmail  map[string]int64
	products      map[int64]domain.Product
	productsBySKU map[string]int64
	nextUserID    int64
	nextProductID int64
	now           func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int64]domain.User),
		usersByEmail:  make(map[string]int64),
		products:      make(map[int64]domain.Product),
		productsBySKU: make(map[string]int64),
		now:           time.Now,
	}
}

// Users returns a UserRepository view of the store.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

// Products returns a ProductRepository view of the store.
func (s *MemoryStore) Products() ProductRepository { return memoryProducts{s} }

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.usersByEmail[user.Email]; exists {
		return ErrDuplicate
	}
	r.s.nextUserID++
	now := r.s.now()
	user.ID = r.s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	r.s.usersByEmail[user.Email] = user.ID
	return nil
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.s.users[id]
	return &user, nil
}

type memoryProducts struct{ s *MemoryStore }

func (r memoryProducts) Create(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.productsBySKU[product.SKU]; exists {
		return ErrDuplicate
	}
	r.s.nextProductID++
	now := r.s.now()
	product.ID = r.s.nextProductID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.s.products[product.ID] = *product
	r.s.productsBySKU[product.SKU] = product.ID
	return nil
}

func (r memoryProducts) Update(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	if owner, exists := r.s.productsBySKU[product.SKU]; exists && owner != product.ID {
		return ErrDuplicate
	}
	delete(r.s.productsBySKU, current.SKU)
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = r.s.now()
	r.s.products[product.ID] = *product
	r.s.productsBySKU[product.SKU] = product.ID
	return nil
}

func (r memoryProducts) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.products[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.s.products, id)
	delete(r.s.productsBySKU, current.SKU)
	return nil
}

func (r memoryProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	product, ok := r.s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (r memoryProducts) GetBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.productsBySKU[sku]
	if !ok {
		return nil, ErrNotFound
	}
	product := r.s.products[id]
	return &product, nil
}

func (r memoryProducts) List(_ context.Context) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.s.products))
	for _, product := range r.s.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
