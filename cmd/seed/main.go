// Command seed creates the first admin account and, on an empty catalog,
// the default garage services. Running it twice is harmless.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/catalog"
	"github.com/nekogravitycat/garage-booking-backend/internal/config"
	"github.com/nekogravitycat/garage-booking-backend/internal/db"
	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/user"
)

var defaultServices = []catalog.CreateRequest{
	{Name: "Interim Service", Description: "Oil and filter change with a 50 point check", BasePrice: 149},
	{Name: "Full Service", Description: "Annual service including air and fuel filters", BasePrice: 229},
	{Name: "Major Service", Description: "Full service plus spark plugs and brake fluid", BasePrice: 329},
	{Name: "MOT", Description: "Annual roadworthiness test", BasePrice: 54.85},
	{Name: "Brake Service", Description: "Pads, discs and brake fluid inspection", BasePrice: 179},
	{Name: "Air Con Regas", Description: "Refrigerant recharge and leak test", BasePrice: 79},
	{Name: "Diagnostics", Description: "Fault code read and report", BasePrice: 69},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate schema")
	}

	users := user.NewService(user.NewPgxRepository(pool), auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost))
	if err := seedAdmin(ctx, users, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		logging.Fatal().Err(err).Msg("failed to seed admin")
	}

	services := catalog.NewService(catalog.NewPgxRepository(pool))
	if err := seedCatalog(ctx, services); err != nil {
		logging.Fatal().Err(err).Msg("failed to seed catalog")
	}
}

func seedAdmin(ctx context.Context, users user.Service, email, password string) error {
	if email == "" || password == "" {
		logging.Warn().Msg("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping admin")
		return nil
	}

	u, err := users.Create(ctx, user.CreateRequest{
		Email:    email,
		Password: password,
		Name:     "Administrator",
		Role:     auth.RoleAdmin,
	})
	if errors.Is(err, user.ErrEmailAlreadyUsed) {
		logging.Info().Str("email", email).Msg("admin already exists")
		return nil
	}
	if err != nil {
		return err
	}
	logging.Info().Str("id", u.ID).Str("email", u.Email).Msg("admin created")
	return nil
}

func seedCatalog(ctx context.Context, services catalog.Service) error {
	_, total, err := services.List(ctx, catalog.Filter{Page: 1, Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		logging.Info().Int("total", total).Msg("catalog not empty, skipping")
		return nil
	}

	for _, req := range defaultServices {
		entry, err := services.Create(ctx, req)
		if err != nil {
			return err
		}
		logging.Info().Str("id", entry.ID).Str("name", entry.Name).Msg("service created")
	}
	return nil
}
