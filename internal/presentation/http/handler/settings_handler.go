package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beaverpumice/scalehouse-api/internal/application/service"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetInvoiceCounter handles reading the persisted invoice counter
func (h *SettingsHandler) GetInvoiceCounter(c *gin.Context) {
	n, err := h.settingsService.GetLastInvoiceNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Invoice counter retrieved successfully", gin.H{
		"last_invoice_number": n,
	})
}

// SetInvoiceCounter handles overwriting the persisted invoice counter
func (h *SettingsHandler) SetInvoiceCounter(c *gin.Context) {
	var req struct {
		LastInvoiceNumber int `json:"last_invoice_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.SetLastInvoiceNumber(c.Request.Context(), req.LastInvoiceNumber); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Invoice counter updated successfully", gin.H{
		"last_invoice_number": req.LastInvoiceNumber,
	})
}
