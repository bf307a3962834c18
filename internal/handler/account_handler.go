package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cashflow/internal/errors"
	"cashflow/internal/model"
	"cashflow/internal/service"
)

// AccountHandler handles payment-account endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents an account creation request.
type CreateAccountRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	AccountName     string  `json:"account_name" validate:"required,max=150"`
	AccountNumber   string  `json:"account_number" validate:"required,max=50"`
	AcceptsCheckin  *bool   `json:"accepts_checkin"`
	AcceptsCheckout *bool   `json:"accepts_checkout"`
	BankName        string  `json:"bank_name" validate:"required,max=150"`
	BranchOffice    *string `json:"branch_office" validate:"omitempty,max=150"`
}

// BalanceResponse represents an account balance response.
type BalanceResponse struct {
	AccountID uuid.UUID `json:"account_id"`
	Balance   string    `json:"balance"`
}

// CreateAccount godoc
// @Summary Create a payment account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "Account data"
// @Success 201 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
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

	account := &model.Account{
		Name:            req.Name,
		AccountName:     req.AccountName,
		AccountNumber:   req.AccountNumber,
		AcceptsCheckin:  true,
		AcceptsCheckout: true,
	}
	if req.AcceptsCheckin != nil {
		account.AcceptsCheckin = *req.AcceptsCheckin
	}
	if req.AcceptsCheckout != nil {
		account.AcceptsCheckout = *req.AcceptsCheckout
	}

	bank := &model.DirectBankTransfer{
		BankName:     req.BankName,
		BranchOffice: req.BranchOffice,
	}

	if err := h.accountService.CreateAccount(c.Request().Context(), account, bank); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, account)
}

// GetAccount godoc
// @Summary Get a payment account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid account ID",
			Code:  "INVALID_UUID",
		})
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, account)
}

// ListAccounts godoc
// @Summary List payment accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 500 {object} errors.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.accountService.ListAccounts(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetBalance godoc
// @Summary Get account balance
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id}/balance [get]
func (h *AccountHandler) GetBalance(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid account ID",
			Code:  "INVALID_UUID",
		})
	}

	balance, err := h.accountService.GetBalance(c.Request().Context(), accountID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		AccountID: accountID,
		Balance:   balance.String(),
	})
}

// DeleteAccount godoc
// @Summary Delete a payment account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid account ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), accountID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
