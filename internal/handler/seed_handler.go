package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cashflow/internal/errors"
	"cashflow/internal/model"
	"cashflow/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	accountService service.AccountService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(accountService service.AccountService) *SeedHandler {
	return &SeedHandler{accountService: accountService}
}

// SeedAccountItem is one account in a seed payload.
type SeedAccountItem struct {
	ID              string `json:"id" validate:"required,uuid"`
	Name            string `json:"name" validate:"required"`
	AccountName     string `json:"account_name" validate:"required"`
	AccountNumber   string `json:"account_number" validate:"required"`
	AcceptsCheckin  bool   `json:"accepts_checkin"`
	AcceptsCheckout bool   `json:"accepts_checkout"`
}

// SeedAccountsRequest represents a seed payload.
type SeedAccountsRequest struct {
	Accounts []SeedAccountItem `json:"accounts" validate:"required,dive"`
}

// SeedAccountsResponse represents the seed response.
type SeedAccountsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SeedAccounts godoc
// @Summary Seed payment accounts from a JSON payload
// @Tags seed
// @Accept json
// @Produce json
// @Param request body SeedAccountsRequest true "Accounts to create or update"
// @Success 200 {object} SeedAccountsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/accounts [post]
func (h *SeedHandler) SeedAccounts(c echo.Context) error {
	var req SeedAccountsRequest
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

	accounts := make([]model.Account, 0, len(req.Accounts))
	for _, item := range req.Accounts {
		accountID, err := uuid.Parse(item.ID)
		if err != nil {
			// Skip invalid UUIDs
			continue
		}
		accounts = append(accounts, model.Account{
			ID:              accountID,
			Kind:            model.AccountKindDirectBankTransfer,
			Name:            item.Name,
			AccountName:     item.AccountName,
			AccountNumber:   item.AccountNumber,
			AcceptsCheckin:  item.AcceptsCheckin,
			AcceptsCheckout: item.AcceptsCheckout,
		})
	}

	count, err := h.accountService.SeedAccounts(c.Request().Context(), accounts)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SeedAccountsResponse{
		Message: "Accounts seeded successfully",
		Count:   count,
	})
}
