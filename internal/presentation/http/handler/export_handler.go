package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beaverpumice/scalehouse-api/internal/application/service"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/dto/response"
)

// ExportHandler handles accounting export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Generate handles building an interchange file for selected tickets. The
// file comes back as a text attachment; pass ?format=json for the invoice
// figures instead of the file.
func (h *ExportHandler) Generate(c *gin.Context) {
	var req struct {
		TicketIDs       []string `json:"ticket_ids" binding:"required"`
		GroupByCustomer bool     `json:"group_by_customer"`
		UseTicketNumber bool     `json:"use_ticket_number"`
		StartingNumber  int      `json:"starting_number"`
		InvoiceDate     string   `json:"invoice_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.exportService.GenerateIIF(c.Request.Context(), service.ExportOptions{
		TicketIDs:       req.TicketIDs,
		GroupByCustomer: req.GroupByCustomer,
		UseTicketNumber: req.UseTicketNumber,
		StartingNumber:  req.StartingNumber,
		InvoiceDate:     req.InvoiceDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "json" {
		response.Success(c, http.StatusOK, "Export generated successfully", result)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(result.Content))
}

// Run triggers the full scheduled export flow immediately: bill everything
// pending, mail the file, flag the tickets.
func (h *ExportHandler) Run(c *gin.Context) {
	if err := h.exportService.RunScheduledExport(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Export run completed", nil)
}
