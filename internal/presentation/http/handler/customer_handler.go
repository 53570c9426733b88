package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beaverpumice/scalehouse-api/internal/application/service"
	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/dto/response"
	"github.com/beaverpumice/scalehouse-api/pkg/money"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Customers retrieved successfully", customers)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Customer retrieved successfully", customer)
}

type customerRequest struct {
	Name          string `json:"name" binding:"required"`
	QBName        string `json:"qb_name"`
	Address1      string `json:"address1"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	PricingMethod string `json:"pricing_method"`
	PriceTon      string `json:"price_ton"`
	PriceYard     string `json:"price_yard"`
	UniversalRate string `json:"universal_rate"`
	FreightMethod string `json:"freight_method"`
	FreightRate   string `json:"freight_rate"`
	Email         string `json:"email"`
	AutoEmail     bool   `json:"auto_email"`
}

func (r *customerRequest) toEntity(id string) *entity.Customer {
	return &entity.Customer{
		ID:            id,
		Name:          r.Name,
		QBName:        r.QBName,
		Address1:      r.Address1,
		City:          r.City,
		State:         r.State,
		Zip:           r.Zip,
		PricingMethod: r.PricingMethod,
		PriceTon:      money.ParseCurrency(r.PriceTon),
		PriceYard:     money.ParseCurrency(r.PriceYard),
		UniversalRate: money.ParseCurrency(r.UniversalRate),
		FreightMethod: r.FreightMethod,
		FreightRate:   money.ParseCurrency(r.FreightRate),
		Email:         r.Email,
		AutoEmail:     r.AutoEmail,
	}
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req.toEntity(""))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), req.toEntity(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Customer deleted successfully", nil)
}
