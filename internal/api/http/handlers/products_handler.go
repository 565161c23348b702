package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// Multipart field names of the optional attachments.
const (
	ImageField = "imgFile"
	PDFField   = "pdfFile"
)

// ProductsHandler exposes product CRUD.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	req, err := readProductRequest(c)
	if err != nil {
		return err
	}
	defer req.close()

	identity, _ := auth.IdentityFromContext(c)
	product, err := h.products.Create(c.UserContext(), identity, req.input, req.image, req.pdf)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewProductResponse(product))
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductListResponse(products))
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	req, err := readProductRequest(c)
	if err != nil {
		return err
	}
	defer req.close()

	identity, _ := auth.IdentityFromContext(c)
	product, err := h.products.Update(c.UserContext(), identity, id, req.input, req.image, req.pdf)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)
	if err := h.products.Delete(c.UserContext(), identity, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// productID rejects ids that can never exist as not found.
func productID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("product")
	}
	return id, nil
}

type productRequest struct {
	input service.ProductInput
	image *service.Upload
	pdf   *service.Upload
	files []multipart.File
}

func (r *productRequest) close() {
	for _, f := range r.files {
		_ = f.Close()
	}
}

// readProductRequest accepts a JSON body or a multipart/urlencoded form.
// Only forms can carry attachments.
func readProductRequest(c *fiber.Ctx) (*productRequest, error) {
	if c.Is("json") {
		form, err := dto.ParseProductJSON(c.Body())
		if err != nil {
			return nil, invalidBody()
		}
		return &productRequest{input: form.ToInput()}, nil
	}

	form := dto.ProductForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		SKU:         c.FormValue("sku"),
		Stock:       c.FormValue("stock"),
		Status:      c.FormValue("status"),
	}
	req := &productRequest{input: form.ToInput()}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		return req, nil
	}
	if req.image, err = req.open(multipartForm, ImageField); err != nil {
		req.close()
		return nil, err
	}
	if req.pdf, err = req.open(multipartForm, PDFField); err != nil {
		req.close()
		return nil, err
	}
	return req, nil
}

// open returns nil when field holds no file or an empty placeholder.
func (r *productRequest) open(form *multipart.Form, field string) (*service.Upload, error) {
	headers := form.File[field]
	if len(headers) == 0 || (headers[0].Filename == "" && headers[0].Size == 0) {
		return nil, nil
	}
	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	r.files = append(r.files, f)
	return &service.Upload{Filename: fh.Filename, Content: f}, nil
}
