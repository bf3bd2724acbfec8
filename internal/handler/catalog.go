package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ventapos/internal/apierror"
	"ventapos/internal/dto"
	"ventapos/internal/model"
	"ventapos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const priceCacheTTL = 4 * time.Hour

// CatalogHandler covers the thin product/customer surface the POS screens
// need. Full catalog management lives in the back-office system.
type CatalogHandler struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	rdb       *redis.Client
}

func NewCatalogHandler(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	rdb *redis.Client,
) *CatalogHandler {
	return &CatalogHandler{products: products, customers: customers, rdb: rdb}
}

// CreateProduct godoc
// @Summary Create a product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateProductRequest true "Product data"
// @Success 201 {object} dto.ProductResponse
// @Router /v1/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := model.Product{
		Barcode:   req.Barcode,
		Name:      req.Name,
		SalePrice: req.SalePrice.Round(2),
		CostPrice: req.CostPrice.Round(2),
		Stock:     req.Stock,
		IsActive:  true,
	}
	if err := h.products.Create(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusConflict, apierror.New("product already exists or could not be created"))
		return
	}
	c.JSON(http.StatusCreated, productToResponse(&p))
}

// ListProducts godoc
// @Summary List products
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive products"
// @Success 200 {array} dto.ProductResponse
// @Router /v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	products, err := h.products.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list products"))
		return
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(&products[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetPriceByBarcode godoc
// @Summary Price check by barcode (no authentication)
// @Tags catalog
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} dto.PriceLookupResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/price/{barcode} [get]
func (h *CatalogHandler) GetPriceByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "price:" + barcode

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceLookupResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	product, err := h.products.FindByBarcode(ctx, barcode)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}

	resp := dto.PriceLookupResponse{
		Name:      product.Name,
		SalePrice: product.SalePrice,
		Stock:     product.Stock,
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, priceCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

// CreateCustomer godoc
// @Summary Create a customer
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateCustomerRequest true "Customer data"
// @Success 201 {object} dto.CustomerResponse
// @Router /v1/customers [post]
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cust := model.Customer{
		Name:        req.Name,
		Document:    req.Document,
		Phone:       req.Phone,
		Email:       req.Email,
		CreditLimit: req.CreditLimit.Round(2),
	}
	if err := h.customers.Create(c.Request.Context(), &cust); err != nil {
		c.JSON(http.StatusConflict, apierror.New("customer already exists or could not be created"))
		return
	}
	c.JSON(http.StatusCreated, customerToResponse(&cust))
}

// ListCustomers godoc
// @Summary List customers with their credit standing
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CustomerResponse
// @Router /v1/customers [get]
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list customers"))
		return
	}
	resp := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		resp[i] = customerToResponse(&customers[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetCustomer godoc
// @Summary Get one customer with available credit
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer UUID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id} [get]
func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid customer ID"))
		return
	}
	cust, err := h.customers.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("customer not found"))
		return
	}
	c.JSON(http.StatusOK, customerToResponse(cust))
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID.String(),
		Barcode:   p.Barcode,
		Name:      p.Name,
		SalePrice: p.SalePrice,
		Stock:     p.Stock,
		IsActive:  p.IsActive,
	}
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Document:    c.Document,
		Balance:     c.Balance,
		CreditLimit: c.CreditLimit,
		Available:   c.CreditLimit.Sub(c.Balance),
	}
}
