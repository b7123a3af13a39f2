package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/contesthub/backend/internal/core/ports"
)

type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createIntentRequest struct {
	Price float64 `json:"price"`
}

type createIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type recordPaymentRequest struct {
	ContestID     string  `json:"contest_id" validate:"required"`
	ContestName   string  `json:"contest_name"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	TransactionID string  `json:"transaction_id" validate:"required"`
	PaidAt        int64   `json:"paid_at"` // unix seconds, optional
}

type recordPaymentResponse struct {
	PaymentID          string `json:"payment_id,omitempty"`
	ContestIncremented bool   `json:"contest_incremented"`
	Replayed           bool   `json:"replayed,omitempty"`
}

// CreateIntent requests a provider payment intent for the given price.
//
// @Summary      Create a payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIntentRequest  true  "Price in major units"
// @Success      200   {object}  createIntentResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	secret, err := h.payments.CreateIntent(c.Request().Context(), req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createIntentResponse{ClientSecret: secret})
}

// Record persists a client-confirmed charge and bumps the contest's
// participation counter.
//
// @Summary      Record a confirmed payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPaymentRequest  true  "Confirmed charge"
// @Success      201   {object}  recordPaymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /payments [post]
func (h *PaymentHandler) Record(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.RecordPaymentInput{
		Email:         email,
		ContestID:     req.ContestID,
		ContestName:   req.ContestName,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	}
	if req.PaidAt > 0 {
		in.PaidAt = time.Unix(req.PaidAt, 0).UTC()
	}

	result, err := h.payments.Record(c.Request().Context(), in)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, recordPaymentResponse{
		PaymentID:          result.PaymentID,
		ContestIncremented: result.ContestIncremented,
		Replayed:           result.Replayed,
	})
}

// Participated lists the contests the caller has paid to enter.
//
// @Summary      List participated contests
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Contest
// @Router       /participated-contests [get]
func (h *PaymentHandler) Participated(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	contests, err := h.payments.ParticipatedContests(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contests)
}
