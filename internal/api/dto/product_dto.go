package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/service"
)

// ProductForm is the textual shape of a product write. Multipart forms
// deliver every field as a string; JSON bodies are normalized into it.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	SKU         string
	Stock       string
	Status      string
}

type productJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	SKU         string          `json:"sku"`
	Stock       json.RawMessage `json:"stock"`
	Status      string          `json:"status"`
}

// ParseProductJSON decodes a JSON body. price and stock may be sent as
// numbers or as numeric strings.
func ParseProductJSON(body []byte) (ProductForm, error) {
	var raw productJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return ProductForm{}, err
	}
	return ProductForm{
		Name:        raw.Name,
		Description: raw.Description,
		Price:       rawText(raw.Price),
		SKU:         raw.SKU,
		Stock:       rawText(raw.Stock),
		Status:      raw.Status,
	}, nil
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ToInput parses the numeric fields. Fields that cannot be parsed are
// reported in ProductInput.Malformed.
func (f ProductForm) ToInput() service.ProductInput {
	in := service.ProductInput{
		Name:        f.Name,
		Description: f.Description,
		SKU:         f.SKU,
		Status:      domain.ProductStatus(f.Status),
	}
	malformed := map[string][]string{}

	price := strings.TrimSpace(f.Price)
	if price == "" {
		malformed["price"] = []string{"price is required"}
	} else if v, err := strconv.ParseFloat(price, 64); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		malformed["price"] = []string{"price must be a number"}
	} else {
		in.Price = v
	}

	stock := strings.TrimSpace(f.Stock)
	if stock == "" {
		malformed["stock"] = []string{"stock is required"}
	} else if v, err := strconv.ParseFloat(stock, 64); err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		malformed["stock"] = []string{"stock must be an integer"}
	} else {
		in.Stock = int(v)
	}

	if len(malformed) > 0 {
		in.Malformed = malformed
	}
	return in
}

// ProductResponse is the JSON view of a product.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	SKU         string    `json:"sku"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	ImgURL      string    `json:"imgUrl"`
	PDFURL      string    `json:"pdfUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProductResponse renders p.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		SKU:         p.SKU,
		Stock:       p.Stock,
		Status:      string(p.Status),
		ImgURL:      p.ImgURL,
		PDFURL:      p.PDFURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductListResponse renders products; the result is never nil.
func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
