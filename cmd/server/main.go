package main

import (
	"log"
	"net/http"
	"os"

	_ "cashflow/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cashflow/internal/auth"
	"cashflow/internal/cache"
	"cashflow/internal/config"
	"cashflow/internal/db"
	"cashflow/internal/handler"
	"cashflow/internal/model"
	"cashflow/internal/numerator"
	"cashflow/internal/repository"
	"cashflow/internal/router"
	"cashflow/internal/service"
)

// @title Cashflow Ledger API
// @version 1.0
// @description Accounting ledger for payment accounts and balance mutations with operator verification.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Checkin{},
			&model.Checkout{},
			&model.Mutation{},
			&model.DirectBankTransfer{},
			&model.Account{},
			&model.Withdraw{},
			&model.Donation{},
			&model.User{},
			&numerator.Sequence{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.DirectBankTransfer{},
		&model.Mutation{},
		&model.Checkin{},
		&model.Checkout{},
		&model.Withdraw{},
		&model.Donation{},
		&numerator.Sequence{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	ledgerRepo := repository.NewLedgerRepository(gormDB)
	referenceRepo := repository.NewReferenceRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	sequence := numerator.New(gormDB)
	resolver := service.NewReferenceResolver(referenceRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	accountService := service.NewAccountService(accountRepo, cacheClient)
	ledgerService := service.NewLedgerService(
		ledgerRepo,
		sequence,
		resolver,
		cacheClient,
		service.ParseEditPolicy(cfg.EditPolicy),
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	mutationHandler := handler.NewMutationHandler(ledgerService)
	referenceHandler := handler.NewReferenceHandler(referenceRepo)
	seedHandler := handler.NewSeedHandler(accountService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		accountHandler,
		mutationHandler,
		referenceHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
