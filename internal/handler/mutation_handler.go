package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cashflow/internal/errors"
	"cashflow/internal/model"
	"cashflow/internal/service"
)

// MutationHandler handles checkin/checkout endpoints.
type MutationHandler struct {
	ledgerService service.LedgerService
}

// NewMutationHandler creates a new mutation handler.
func NewMutationHandler(ledgerService service.LedgerService) *MutationHandler {
	return &MutationHandler{ledgerService: ledgerService}
}

// CreateMutationRequest represents a checkin or checkout creation request.
type CreateMutationRequest struct {
	AccountID       string  `json:"account_id" validate:"required,uuid"`
	AccountName     string  `json:"account_name" validate:"required,max=255"`
	AccountNumber   string  `json:"account_number" validate:"required,max=255"`
	ProviderName    string  `json:"provider_name" validate:"required,max=255"`
	Amount          string  `json:"amount" validate:"required"`
	Note            *string `json:"note" validate:"omitempty,max=500"`
	TransferReceipt *string `json:"transfer_receipt" validate:"omitempty,max=255"`
	ReferenceType   *string `json:"reference_type" validate:"omitempty,max=50"`
	ReferenceID     *string `json:"reference_id" validate:"omitempty,max=100"`
}

// UpdateMutationRequest represents a mutation edit request.
type UpdateMutationRequest struct {
	Amount          *string `json:"amount"`
	Note            *string `json:"note" validate:"omitempty,max=500"`
	TransferReceipt *string `json:"transfer_receipt" validate:"omitempty,max=255"`
	IsVerified      *bool   `json:"is_verified"`
}

// MutationResponse mirrors the administrative list columns.
type MutationResponse struct {
	ID         uuid.UUID `json:"id"`
	InnerID    string    `json:"inner_id"`
	AccountID  uuid.UUID `json:"account_id"`
	CreatedAt  time.Time `json:"created_at"`
	Flow       string    `json:"flow"`
	Amount     string    `json:"amount"`
	OldBalance string    `json:"old_balance"`
	Balance    string    `json:"balance"`
	IsVerified bool      `json:"is_verified"`
}

func toMutationResponse(m *model.Mutation) MutationResponse {
	return MutationResponse{
		ID:         m.ID,
		InnerID:    m.InnerID,
		AccountID:  m.AccountID,
		CreatedAt:  m.CreatedAt,
		Flow:       string(m.Flow),
		Amount:     m.Amount.String(),
		OldBalance: m.OldBalance.StringFixed(2),
		Balance:    m.Balance.StringFixed(2),
		IsVerified: m.IsVerified,
	}
}

// CreateCheckin godoc
// @Summary Record money entering an account
// @Tags mutations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMutationRequest true "Checkin data"
// @Success 201 {object} model.Checkin
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /checkins [post]
func (h *MutationHandler) CreateCheckin(c echo.Context) error {
	base, detail, httpErr := h.bindCreateRequest(c)
	if httpErr != nil {
		return httpErr
	}

	checkin := &model.Checkin{
		AccountName:   detail.AccountName,
		AccountNumber: detail.AccountNumber,
		ProviderName:  detail.ProviderName,
		ReferenceType: detail.ReferenceType,
		ReferenceID:   detail.ReferenceID,
		Mutation:      *base,
	}

	if err := h.ledgerService.CreateCheckin(c.Request().Context(), checkin); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, checkin)
}

// CreateCheckout godoc
// @Summary Record money leaving an account
// @Tags mutations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMutationRequest true "Checkout data"
// @Success 201 {object} model.Checkout
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /checkouts [post]
func (h *MutationHandler) CreateCheckout(c echo.Context) error {
	base, detail, httpErr := h.bindCreateRequest(c)
	if httpErr != nil {
		return httpErr
	}

	checkout := &model.Checkout{
		AccountName:   detail.AccountName,
		AccountNumber: detail.AccountNumber,
		ProviderName:  detail.ProviderName,
		ReferenceType: detail.ReferenceType,
		ReferenceID:   detail.ReferenceID,
		Mutation:      *base,
	}

	if err := h.ledgerService.CreateCheckout(c.Request().Context(), checkout); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, checkout)
}

// bindCreateRequest parses and validates the shared creation payload.
func (h *MutationHandler) bindCreateRequest(c echo.Context) (*model.Mutation, *CreateMutationRequest, *echo.HTTPError) {
	var req CreateMutationRequest
	if err := c.Bind(&req); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid account_id",
			Code:  "INVALID_UUID",
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	base := &model.Mutation{
		AccountID:       accountID,
		Amount:          amount,
		Note:            req.Note,
		TransferReceipt: req.TransferReceipt,
		OwnerID:         operatorID(c),
	}
	return base, &req, nil
}

// GetMutation godoc
// @Summary Get a mutation with its variant detail
// @Tags mutations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mutation ID"
// @Success 200 {object} interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /mutations/{id} [get]
func (h *MutationHandler) GetMutation(c echo.Context) error {
	id, httpErr := parseMutationID(c)
	if httpErr != nil {
		return httpErr
	}

	entry, err := h.ledgerService.GetEntry(c.Request().Context(), id)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, entry)
}

// ListMutations godoc
// @Summary List mutations
// @Tags mutations
// @Produce json
// @Security BearerAuth
// @Param account_id query string false "Filter by account"
// @Success 200 {array} MutationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /mutations [get]
func (h *MutationHandler) ListMutations(c echo.Context) error {
	var accountID *uuid.UUID
	if raw := c.QueryParam("account_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid account_id",
				Code:  "INVALID_UUID",
			})
		}
		accountID = &parsed
	}

	mutations, err := h.ledgerService.ListMutations(c.Request().Context(), accountID)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	responses := make([]MutationResponse, 0, len(mutations))
	for i := range mutations {
		responses = append(responses, toMutationResponse(&mutations[i]))
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateMutation godoc
// @Summary Edit a mutation and recompute its balances
// @Tags mutations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mutation ID"
// @Param request body UpdateMutationRequest true "Fields to change"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /mutations/{id} [put]
func (h *MutationHandler) UpdateMutation(c echo.Context) error {
	id, httpErr := parseMutationID(c)
	if httpErr != nil {
		return httpErr
	}

	var req UpdateMutationRequest
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

	entry, err := h.ledgerService.GetEntry(c.Request().Context(), id)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	base := entry.Base()
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid amount",
				Code:  "INVALID_AMOUNT",
			})
		}
		base.Amount = amount
	}
	if req.Note != nil {
		base.Note = req.Note
	}
	if req.TransferReceipt != nil {
		base.TransferReceipt = req.TransferReceipt
	}
	if req.IsVerified != nil && *req.IsVerified && !base.IsVerified {
		now := time.Now()
		base.IsVerified = true
		base.VerifiedAt = &now
	}

	if err := h.ledgerService.UpdateEntry(c.Request().Context(), entry); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toMutationResponse(base))
}

// VerifyMutation godoc
// @Summary Verify a mutation and sync the account balance
// @Tags mutations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mutation ID"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /mutations/{id}/verify [post]
func (h *MutationHandler) VerifyMutation(c echo.Context) error {
	id, httpErr := parseMutationID(c)
	if httpErr != nil {
		return httpErr
	}

	m, err := h.ledgerService.VerifyMutation(c.Request().Context(), id)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toMutationResponse(m))
}

// GetReference godoc
// @Summary Resolve the external object a mutation represents
// @Tags mutations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mutation ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /mutations/{id}/reference [get]
func (h *MutationHandler) GetReference(c echo.Context) error {
	id, httpErr := parseMutationID(c)
	if httpErr != nil {
		return httpErr
	}

	ref, err := h.ledgerService.GetReference(c.Request().Context(), id)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"reference": ref})
}

func parseMutationID(c echo.Context) (uuid.UUID, *echo.HTTPError) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid mutation ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// operatorID extracts the authenticated operator from the JWT, if any.
func operatorID(c echo.Context) *uint {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	raw, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}
	id := uint(raw)
	return &id
}
