package domain

import "time"

// ProductStatus represents the publication state of a product.
type ProductStatus string

const (
	ProductStatusDraft   ProductStatus = "draft"
	ProductStatusActive  ProductStatus = "active"
	ProductStatusBlocked ProductStatus = "blocked"
)

// Valid reports whether s is one of the known statuses.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusBlocked:
		return true
	}
	return false
}

// Product is a catalog entry. ImgURL and PDFURL are empty when no file is attached.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	SKU         string
	Stock       int
	Status      ProductStatus
	ImgURL      string
	PDFURL      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
