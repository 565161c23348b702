package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var productCols = []string{"id", "name", "description", "price", "sku", "stock", "status", "img_url", "pdf_url", "created_at", "updated_at"}

func TestUserRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash)")).
		WithArgs("Ann", "ann@x.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	user := &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(mock).Create(context.Background(), user))
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ann", "ann@x.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := NewUserRepository(mock).Create(context.Background(), &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at, updated_at").
		WithArgs("ann@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(int64(3), "Ann", "ann@x.com", "hash", now, now))

	user, err := NewUserRepository(mock).GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestUserRepositoryGetByEmailMissing(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("nobody@x.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserRepository(mock).GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Widget", "", 9.99, "W-1", 5, "draft", "/uploads/a.png", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	product := &domain.Product{Name: "Widget", Price: 9.99, SKU: "W-1", Stock: 5, Status: domain.ProductStatusDraft, ImgURL: "/uploads/a.png"}
	require.NoError(t, NewProductRepository(mock).Create(context.Background(), product))
	assert.Equal(t, int64(10), product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepositoryCreateDuplicateSKU(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Widget", "", 9.99, "W-1", 5, "draft", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"})

	err := NewProductRepository(mock).Create(context.Background(), &domain.Product{Name: "Widget", Price: 9.99, SKU: "W-1", Stock: 5, Status: domain.ProductStatusDraft})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestProductRepositoryUpdate(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE products").
		WithArgs("Widget", "d", 1.5, "W-1", 0, "active", "", "/uploads/b.pdf", int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	product := &domain.Product{ID: 4, Name: "Widget", Description: "d", Price: 1.5, SKU: "W-1", Status: domain.ProductStatusActive, PDFURL: "/uploads/b.pdf"}
	require.NoError(t, NewProductRepository(mock).Update(context.Background(), product))
	assert.Equal(t, now, product.UpdatedAt)
}

func TestProductRepositoryUpdateMissing(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("UPDATE products").
		WithArgs("Widget", "", 1.5, "W-1", 0, "active", "", "", int64(99)).
		WillReturnError(pgx.ErrNoRows)

	err := NewProductRepository(mock).Update(context.Background(), &domain.Product{ID: 99, Name: "Widget", Price: 1.5, SKU: "W-1", Status: domain.ProductStatusActive})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepositoryDelete(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec("DELETE FROM products").WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM products").WithArgs(int64(2)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM products").WithArgs(int64(3)).WillReturnError(errors.New("conn closed"))

	repo := NewProductRepository(mock)
	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrNotFound)

	err := repo.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestProductRepositoryGetByID(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("FROM products WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(1), "Widget", "", 9.99, "W-1", 5, "draft", "", "", now, now))
	mock.ExpectQuery("FROM products WHERE id").
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewProductRepository(mock)
	product, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusDraft, product.Status)
	assert.Equal(t, 9.99, product.Price)

	_, err = repo.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepositoryGetBySKU(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("FROM products WHERE sku").
		WithArgs("W-1").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(1), "Widget", "", 9.99, "W-1", 5, "blocked", "", "", now, now))

	product, err := NewProductRepository(mock).GetBySKU(context.Background(), "W-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, domain.ProductStatusBlocked, product.Status)
}

func TestProductRepositoryList(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("FROM products ORDER BY id").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(1), "Widget", "", 9.99, "W-1", 5, "draft", "", "", now, now).
			AddRow(int64(2), "Gadget", "g", 3.0, "G-1", 0, "active", "/uploads/g.png", "", now, now))

	products, err := NewProductRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "W-1", products[0].SKU)
	assert.Equal(t, "/uploads/g.png", products[1].ImgURL)
}

func TestProductRepositoryListEmpty(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("FROM products ORDER BY id").WillReturnRows(pgxmock.NewRows(productCols))

	products, err := NewProductRepository(mock).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
