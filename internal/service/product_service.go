package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/storage"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

const duplicateSKU = "sku already exists"

// ProductService coordinates product workflows.
type ProductService struct {
	products   repository.ProductRepository
	files      storage.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles requirements for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Files       storage.Store
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// ProductInput describes the writable fields of a product.
// Malformed holds field errors found while decoding the request.
type ProductInput struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	Price       float64              `json:"price" validate:"gt=0"`
	SKU         string               `json:"sku" validate:"required"`
	Stock       int                  `json:"stock" validate:"gte=0"`
	Status      domain.ProductStatus `json:"status" validate:"required,oneof=draft active blocked"`
	Malformed   map[string][]string  `json:"-" validate:"-"`
}

// Upload is a file attached to a create or update request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// NewProductService builds the service.
func NewProductService(deps ProductDependencies) *ProductService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products:   deps.ProductRepo,
		files:      deps.Files,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create validates input, stores any uploads and persists the product.
func (s *ProductService) Create(ctx context.Context, actor domain.Identity, in ProductInput, image, pdf *Upload) (*domain.Product, error) {
	in = normalize(in)
	if err := validateWith(in, in.Malformed); err != nil {
		return nil, err
	}

	if _, err := s.products.GetBySKU(ctx, in.SKU); err == nil {
		return nil, apperrors.NewDuplicateError(duplicateSKU)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	product := &domain.Product{}
	apply(product, in)
	if err := s.attach(ctx, product, image, pdf); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, s.writeError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(
		events.EventProductCreated, product.ID, events.ActorFromIdentity(actor), events.NewProductPayload(product),
	))
	return product, nil
}

// Get returns a product by ID.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, s.readError(err)
	}
	return product, nil
}

// List returns every product in insertion order. The slice is never nil.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Update replaces every scalar field of the product. File URLs change only
// when a new file is uploaded.
func (s *ProductService) Update(ctx context.Context, actor domain.Identity, id int64, in ProductInput, image, pdf *Upload) (*domain.Product, error) {
	in = normalize(in)
	if err := validateWith(in, in.Malformed); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, s.readError(err)
	}

	if other, err := s.products.GetBySKU(ctx, in.SKU); err == nil {
		if other.ID != product.ID {
			return nil, apperrors.NewDuplicateError(duplicateSKU)
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	apply(product, in)
	if err := s.attach(ctx, product, image, pdf); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, s.writeError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(
		events.EventProductUpdated, product.ID, events.ActorFromIdentity(actor), events.NewProductPayload(product),
	))
	return product, nil
}

// Delete removes a product. Its uploaded files are left in place.
func (s *ProductService) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return s.readError(err)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return s.readError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(
		events.EventProductDeleted, id, events.ActorFromIdentity(actor), events.ProductDeletedPayload{SKU: product.SKU},
	))
	return nil
}

func (s *ProductService) attach(ctx context.Context, product *domain.Product, image, pdf *Upload) error {
	if image.present() {
		url, err := s.files.Save(ctx, image.Content, image.Filename)
		if err != nil {
			return asStorageError(err)
		}
		product.ImgURL = url
	}
	if pdf.present() {
		url, err := s.files.Save(ctx, pdf.Content, pdf.Filename)
		if err != nil {
			return asStorageError(err)
		}
		product.PDFURL = url
	}
	return nil
}

func (s *ProductService) readError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("product")
	}
	return apperrors.NewInternalError(err)
}

func (s *ProductService) writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewDuplicateError(duplicateSKU)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("product")
	default:
		return apperrors.NewInternalError(err)
	}
}

func (u *Upload) present() bool {
	return u != nil && u.Content != nil
}

func asStorageError(err error) error {
	if apperrors.IsKind(err, apperrors.KindStorage) {
		return err
	}
	return apperrors.NewStorageError(err)
}

func normalize(in ProductInput) ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Description = strings.TrimSpace(in.Description)
	in.Status = domain.ProductStatus(strings.TrimSpace(string(in.Status)))
	return in
}

func apply(p *domain.Product, in ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.SKU = in.SKU
	p.Stock = in.Stock
	p.Status = in.Status
}
