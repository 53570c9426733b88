package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beaverpumice/scalehouse-api/internal/application/service"
	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/dto/response"
)

// CarrierHandler handles hauling carrier and truck HTTP requests
type CarrierHandler struct {
	carrierService *service.CarrierService
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(carrierService *service.CarrierService) *CarrierHandler {
	return &CarrierHandler{carrierService: carrierService}
}

// ListCarriers handles listing carriers
func (h *CarrierHandler) ListCarriers(c *gin.Context) {
	carriers, err := h.carrierService.ListCarriers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Carriers retrieved successfully", carriers)
}

type carrierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Active  bool   `json:"active"`
}

// CreateCarrier handles creating a carrier
func (h *CarrierHandler) CreateCarrier(c *gin.Context) {
	var req carrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	carrier, err := h.carrierService.CreateCarrier(c.Request.Context(), &entity.Carrier{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Carrier created successfully", carrier)
}

// UpdateCarrier handles updating a carrier
func (h *CarrierHandler) UpdateCarrier(c *gin.Context) {
	var req carrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	carrier, err := h.carrierService.UpdateCarrier(c.Request.Context(), &entity.Carrier{
		ID:      c.Param("id"),
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Carrier updated successfully", carrier)
}

// ListTrucks handles listing trucks
func (h *CarrierHandler) ListTrucks(c *gin.Context) {
	trucks, err := h.carrierService.ListTrucks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Trucks retrieved successfully", trucks)
}

type truckRequest struct {
	Name      string  `json:"name" binding:"required"`
	CarrierID string  `json:"carrier_id"`
	Plate     string  `json:"plate"`
	TareLbs   float64 `json:"tare_lbs"`
	Active    bool    `json:"active"`
}

// CreateTruck handles creating a truck
func (h *CarrierHandler) CreateTruck(c *gin.Context) {
	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	truck, err := h.carrierService.CreateTruck(c.Request.Context(), &entity.Truck{
		Name:      req.Name,
		CarrierID: req.CarrierID,
		Plate:     req.Plate,
		TareLbs:   req.TareLbs,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Truck created successfully", truck)
}

// UpdateTruck handles updating a truck
func (h *CarrierHandler) UpdateTruck(c *gin.Context) {
	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	truck, err := h.carrierService.UpdateTruck(c.Request.Context(), &entity.Truck{
		ID:        c.Param("id"),
		Name:      req.Name,
		CarrierID: req.CarrierID,
		Plate:     req.Plate,
		TareLbs:   req.TareLbs,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Truck updated successfully", truck)
}
