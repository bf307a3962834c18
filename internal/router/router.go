package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cashflow/internal/config"
	"cashflow/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	mutationHandler *handler.MutationHandler,
	referenceHandler *handler.ReferenceHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/seed/accounts", seedHandler.SeedAccounts)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	}))

	// Account routes
	secured.POST("/accounts", accountHandler.CreateAccount)
	secured.GET("/accounts", accountHandler.ListAccounts)
	secured.GET("/accounts/:id", accountHandler.GetAccount)
	secured.GET("/accounts/:id/balance", accountHandler.GetBalance)
	secured.DELETE("/accounts/:id", accountHandler.DeleteAccount)

	// Ledger routes
	secured.POST("/checkins", mutationHandler.CreateCheckin)
	secured.POST("/checkouts", mutationHandler.CreateCheckout)
	secured.GET("/mutations", mutationHandler.ListMutations)
	secured.GET("/mutations/:id", mutationHandler.GetMutation)
	secured.PUT("/mutations/:id", mutationHandler.UpdateMutation)
	secured.POST("/mutations/:id/verify", mutationHandler.VerifyMutation)
	secured.GET("/mutations/:id/reference", mutationHandler.GetReference)

	// Reference object routes
	secured.POST("/withdraws", referenceHandler.CreateWithdraw)
	secured.POST("/donations", referenceHandler.CreateDonation)
	secured.POST("/references/:type/:id/paid", referenceHandler.MakePaid)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
