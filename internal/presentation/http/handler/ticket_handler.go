package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beaverpumice/scalehouse-api/internal/application/service"
	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/enum"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/dto/response"
	"github.com/beaverpumice/scalehouse-api/pkg/money"
)

// TicketHandler handles weigh ticket HTTP requests
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// List handles listing tickets, filterable by status and export flag
func (h *TicketHandler) List(c *gin.Context) {
	filter := repository.TicketFilter{
		Status: enum.TicketStatus(c.Query("status")),
	}
	if v := c.Query("exported"); v != "" {
		exported := v == "true" || v == "1"
		filter.Exported = &exported
	}
	if v := c.Query("limit"); v != "" {
		filter.MaxRecords, _ = strconv.Atoi(v)
	}

	tickets, err := h.ticketService.ListTickets(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Tickets retrieved successfully", tickets)
}

// ListPending handles listing tickets awaiting the accounting export
func (h *TicketHandler) ListPending(c *gin.Context) {
	tickets, err := h.ticketService.ListPendingExport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Pending tickets retrieved successfully", tickets)
}

// Get handles retrieving a single ticket
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Ticket retrieved successfully", ticket)
}

type ticketRequest struct {
	CustomerID    string `json:"customer_id"`
	ProductID     string `json:"product_id"`
	CarrierID     string `json:"carrier_id"`
	Truck         string `json:"truck"`
	GrossLbs      int    `json:"gross_lbs"`
	TareLbs       int    `json:"tare_lbs"`
	PONumber      string `json:"po_number"`
	Note          string `json:"note"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	FreightCharge string `json:"freight_charge"`
	FreightRate   string `json:"freight_rate"`
	PricingMethod string `json:"pricing_method"`
	Rate          string `json:"rate"`
}

func (r *ticketRequest) toEntity(id string) *entity.Ticket {
	return &entity.Ticket{
		ID:            id,
		CustomerID:    r.CustomerID,
		ProductID:     r.ProductID,
		CarrierID:     r.CarrierID,
		TruckText:     r.Truck,
		GrossLbs:      r.GrossLbs,
		TareLbs:       r.TareLbs,
		PONumber:      r.PONumber,
		Note:          r.Note,
		Status:        enum.TicketStatus(r.Status),
		Date:          r.Date,
		FreightCharge: money.ParseCurrencyValue(r.FreightCharge),
		FreightRate:   money.ParseCurrency(r.FreightRate),
		PricingMethod: r.PricingMethod,
		Rate:          money.ParseCurrency(r.Rate),
	}
}

// Create handles creating a ticket
func (h *TicketHandler) Create(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), req.toEntity(""))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Ticket created successfully", ticket)
}

// Update handles updating a ticket
func (h *TicketHandler) Update(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), req.toEntity(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Ticket updated successfully", ticket)
}

// Delete handles deleting a ticket
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.ticketService.DeleteTicket(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Ticket deleted successfully", nil)
}

// Email handles mailing a ticket copy to the customer contact
func (h *TicketHandler) Email(c *gin.Context) {
	var req struct {
		To string `json:"to"`
	}
	// Body is optional; absent means the customer's address on file.
	_ = c.ShouldBindJSON(&req)

	if err := h.ticketService.EmailTicket(c.Request.Context(), c.Param("id"), req.To); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Ticket emailed successfully", nil)
}

// MarkExported handles flagging tickets after the office confirms the file
// was imported into the accounting system.
func (h *TicketHandler) MarkExported(c *gin.Context) {
	var req struct {
		TicketIDs      []string       `json:"ticket_ids" binding:"required"`
		ExportDate     string         `json:"export_date"`
		InvoiceNumbers map[string]int `json:"invoice_numbers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.ticketService.MarkExported(c.Request.Context(), req.TicketIDs, repository.ExportFlags{
		ExportDate:     req.ExportDate,
		InvoiceNumbers: req.InvoiceNumbers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Failed > 0 {
		response.Success(c, http.StatusMultiStatus, "Some tickets could not be flagged", result)
		return
	}
	response.Success(c, http.StatusOK, "Tickets marked exported", result)
}
