package handler

import (
	"net/http"
	"time"

	"fullapp/internal/delivery/api/middleware"
	"fullapp/internal/delivery/api/response"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/errors"
	"fullapp/internal/infra/metrics"
	"fullapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProductRequest is the body of product create and update calls.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
}

// ProductResponse is the public view of a product. Price is serialized as a string to keep it exact.
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	CreatedByUserID uuid.UUID       `json:"createdByUserId"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Stock:           p.Stock,
		CreatedByUserID: p.CreatedByUserID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (r *ProductRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

// ProductHandler serves the product catalog.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func parseProductID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("id must be a UUID")
	}

	return id, nil
}

func (h *ProductHandler) bindProduct(c echo.Context) (*ProductRequest, error) {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

// List returns every product.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// Get returns one product.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	product, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "")
}

// Create adds a product owned by the caller.
func (h *ProductHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	req, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	product, err := h.uc.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}
	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()

	c.Response().Header().Set(echo.HeaderLocation, "/api/products/"+product.ID.String())

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created")
}

// Update overwrites a product's writable fields.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	req, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	if err := h.uc.Update(c.Request().Context(), id, req.toInput()); err != nil {
		return errors.WithStack(err)
	}
	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()

	return response.NoContent(c)
}

// Delete removes a product. Admin only.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}
	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()

	return response.NoContent(c)
}
