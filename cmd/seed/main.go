package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"

	"cashflow/internal/cache"
	"cashflow/internal/config"
	"cashflow/internal/db"
	"cashflow/internal/model"
	"cashflow/internal/repository"
	"cashflow/internal/service"
)

// SeedAccountData is one account in a seed file.
type SeedAccountData struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AccountName     string `json:"account_name"`
	AccountNumber   string `json:"account_number"`
	AcceptsCheckin  bool   `json:"accepts_checkin"`
	AcceptsCheckout bool   `json:"accepts_checkout"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Account{}, &model.DirectBankTransfer{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	path := "seed/accounts.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read seed file %s: %v", path, err)
	}

	var seedData []SeedAccountData
	if err := json.Unmarshal(raw, &seedData); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}
	log.Printf("Loaded %d accounts from %s", len(seedData), path)

	accounts := make([]model.Account, 0, len(seedData))
	skipped := 0
	for _, item := range seedData {
		accountID, err := uuid.Parse(item.ID)
		if err != nil {
			skipped++
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
	if skipped > 0 {
		log.Printf("Skipped %d entries with invalid UUIDs", skipped)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	accountService := service.NewAccountService(accountRepo, cacheClient)

	count, err := accountService.SeedAccounts(context.Background(), accounts)
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}
	log.Printf("Seeded %d accounts", count)
}
