package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashflow/internal/errors"
	"cashflow/internal/model"
	"cashflow/internal/repository"
)

// ReferenceHandler manages the external objects mutations may reference.
type ReferenceHandler struct {
	refRepo repository.ReferenceRepository
}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler(refRepo repository.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{refRepo: refRepo}
}

// CreateWithdrawRequest represents a withdraw creation request.
type CreateWithdrawRequest struct {
	RequesterName string  `json:"requester_name" validate:"required,max=255"`
	Amount        string  `json:"amount" validate:"required"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
}

// CreateDonationRequest represents a donation creation request.
type CreateDonationRequest struct {
	DonorName string  `json:"donor_name" validate:"required,max=255"`
	Amount    string  `json:"amount" validate:"required"`
	Message   *string `json:"message" validate:"omitempty,max=500"`
}

// CreateWithdraw godoc
// @Summary Create a withdraw record
// @Tags references
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWithdrawRequest true "Withdraw data"
// @Success 201 {object} model.Withdraw
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /withdraws [post]
func (h *ReferenceHandler) CreateWithdraw(c echo.Context) error {
	var req CreateWithdrawRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	withdraw := &model.Withdraw{
		RequesterName: req.RequesterName,
		Amount:        amount,
		Description:   req.Description,
	}
	if err := h.refRepo.CreateWithdraw(c.Request().Context(), withdraw); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, withdraw)
}

// CreateDonation godoc
// @Summary Create a donation record
// @Tags references
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDonationRequest true "Donation data"
// @Success 201 {object} model.Donation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /donations [post]
func (h *ReferenceHandler) CreateDonation(c echo.Context) error {
	var req CreateDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	donation := &model.Donation{
		DonorName: req.DonorName,
		Amount:    amount,
		Message:   req.Message,
	}
	if err := h.refRepo.CreateDonation(c.Request().Context(), donation); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, donation)
}

// MakePaid godoc
// @Summary Mark a payable reference object as settled
// @Tags references
// @Produce json
// @Security BearerAuth
// @Param type path string true "Reference type (withdraw or donation)"
// @Param id path string true "Object ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /references/{type}/{id}/paid [post]
func (h *ReferenceHandler) MakePaid(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid object ID",
			Code:  "INVALID_UUID",
		})
	}

	ctx := c.Request().Context()
	switch c.Param("type") {
	case model.ReferenceTypeWithdraw:
		err = h.refRepo.MarkWithdrawPaid(ctx, id)
	case model.ReferenceTypeDonation:
		err = h.refRepo.MarkDonationPaid(ctx, id)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "unknown reference type",
			Code:  "INVALID_REFERENCE_TYPE",
		})
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: "reference object not found",
				Code:  "REFERENCE_NOT_FOUND",
			})
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
