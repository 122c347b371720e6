package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PaymentHandler struct {
	BaseHandler
	checkoutService services.CheckoutService
	reportService   services.ReportService
}

func NewPaymentHandler(checkoutService services.CheckoutService, reportService services.ReportService, logger utils.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:     NewBaseHandler(logger),
		checkoutService: checkoutService,
		reportService:   reportService,
	}
}

// CreatePaymentIntent asks the gateway for a card payment intent
// @Summary Create payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Param intent body services.PaymentIntentRequest true "Price in major units"
// @Success 200 {object} models.PaymentIntentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.PaymentIntentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.CreatePaymentIntent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordPayment stores the confirmed payment body as sent by the client
// @Summary Record payment
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} models.WriteResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.checkoutService.RecordPayment(c.Request.Context(), requester, payload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Payment recorded", "email", requester)
	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	payments, err := h.checkoutService.ListPayments(c.Request.Context(), requester, c.Query("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// ExportPayments streams every payment as an xlsx workbook
// @Summary Export payments
// @Tags payments
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /payments/export [get]
func (h *PaymentHandler) ExportPayments(c *gin.Context) {
	h.LogRequest(c, "Exporting payments")

	data, err := h.reportService.ExportPayments(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
