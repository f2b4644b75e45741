package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/garage-booking-backend/internal/api"
	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/blog"
	"github.com/nekogravitycat/garage-booking-backend/internal/booking"
	"github.com/nekogravitycat/garage-booking-backend/internal/catalog"
	"github.com/nekogravitycat/garage-booking-backend/internal/config"
	"github.com/nekogravitycat/garage-booking-backend/internal/customer"
	"github.com/nekogravitycat/garage-booking-backend/internal/file"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/ratelimit"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/garage-booking-backend/internal/pricing"
	"github.com/nekogravitycat/garage-booking-backend/internal/shop"
	"github.com/nekogravitycat/garage-booking-backend/internal/user"
	"github.com/nekogravitycat/garage-booking-backend/internal/vehicle"
	"github.com/nekogravitycat/garage-booking-backend/internal/video"
)

const thumbnailSize = 400

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	Limiter     *ratelimit.Limiter
	UserService user.Service
	Catalog     catalog.Service
}

// NewContainer initializes all modules and returns the container.
// The booking search index is probed once here.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	idx, err := search.Select(ctx, pool, cfg.SearchMode, booking.SearchSpec)
	if err != nil {
		return nil, fmt.Errorf("select search index: %w", err)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Vehicle and Pricing
	vehicleGateway := newVehicleGateway(cfg)
	calculator := pricing.NewCalculatorNow()

	// Catalog Module
	catalogService := catalog.NewService(catalog.NewPgxRepository(pool))

	// Booking and Customer Modules share the bookings table and its index.
	bookingService := booking.NewService(booking.NewPgxRepository(pool, idx), catalogService)
	customerService := customer.NewService(customer.NewPgxRepository(pool, idx))

	// Content Modules
	blogService := blog.NewService(blog.NewPgxRepository(pool))
	videoService := video.NewService(video.NewPgxRepository(pool))
	shopService := shop.NewService(shop.NewPgxRepository(pool))
	fileService := file.NewService(file.NewPgxRepository(pool), store, storage.NewThumbnailer(thumbnailSize, thumbnailSize))

	// Authorization Gate
	routes := auth.DefaultAdminRoutes()
	if len(cfg.AdminRoutes) > 0 {
		routes, err = auth.ParseAdminRoutes(cfg.AdminRoutes)
		if err != nil {
			return nil, fmt.Errorf("parse ADMIN_ROUTES: %w", err)
		}
	}
	gate := auth.NewGate(routes, user.NewAccountLookup(userRepo))

	limiter := ratelimit.New(cfg.PublicRateLimit, time.Minute)

	// API Router Config
	router, err := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		JWTManager:      jwtManager,
		Gate:            gate,
		PublicLimiter:   limiter.Middleware(),
		UserService:     userService,
		VehicleGateway:  vehicleGateway,
		Calculator:      calculator,
		CatalogService:  catalogService,
		BookingService:  bookingService,
		CustomerService: customerService,
		BlogService:     blogService,
		VideoService:    videoService,
		ShopService:     shopService,
		FileService:     fileService,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		Limiter:     limiter,
		UserService: userService,
		Catalog:     catalogService,
	}, nil
}

// newVehicleGateway builds the registry client without a client timeout, so a
// slow registry only ends when the caller's request context does.
func newVehicleGateway(cfg *config.Config) *vehicle.Client {
	return vehicle.NewClient(cfg.VehicleAPIURL, cfg.VehicleAPIKey, nil)
}
