package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/blog"
	blogHttp "github.com/nekogravitycat/garage-booking-backend/internal/blog/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/garage-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/catalog"
	catalogHttp "github.com/nekogravitycat/garage-booking-backend/internal/catalog/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/customer"
	customerHttp "github.com/nekogravitycat/garage-booking-backend/internal/customer/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/file"
	fileHttp "github.com/nekogravitycat/garage-booking-backend/internal/file/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/metrics"
	"github.com/nekogravitycat/garage-booking-backend/internal/pricing"
	pricingHttp "github.com/nekogravitycat/garage-booking-backend/internal/pricing/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/shop"
	shopHttp "github.com/nekogravitycat/garage-booking-backend/internal/shop/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/garage-booking-backend/internal/user/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/vehicle"
	vehicleHttp "github.com/nekogravitycat/garage-booking-backend/internal/vehicle/http"
	"github.com/nekogravitycat/garage-booking-backend/internal/video"
	videoHttp "github.com/nekogravitycat/garage-booking-backend/internal/video/http"
)

// devOrigins are the local frontends allowed outside production.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:8081", // Swagger
}

// Config holds everything the router needs to register routes.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	JWTManager *auth.JWTManager
	Gate       *auth.Gate
	// PublicLimiter guards the public POST endpoints.
	PublicLimiter gin.HandlerFunc

	UserService     user.Service
	VehicleGateway  vehicle.Gateway
	Calculator      *pricing.Calculator
	CatalogService  catalog.Service
	BookingService  booking.Service
	CustomerService customer.Service
	BlogService     blog.Service
	VideoService    video.Service
	ShopService     shop.Service
	FileService     file.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles the global middleware chain and registers every module under /v1,
// plus the vehicle lookup under /api.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// Order matters: the request logger must wrap recovery so panics are
	// logged with the request id, and the gate needs the principal.
	r.Use(
		logging.RequestLogger(),
		logging.Recovery(),
		metrics.Middleware(),
		cors.New(corsConfig(cfg)),
		auth.Authenticate(cfg.JWTManager),
		cfg.Gate.Middleware(),
	)

	limiter := cfg.PublicLimiter
	if limiter == nil {
		limiter = func(c *gin.Context) { c.Next() }
	}

	r.GET("/metrics", metrics.Handler())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	vehicleHandler := vehicleHttp.NewHandler(cfg.VehicleGateway)
	// Booking widgets already embedded on customer sites call the lookup here.
	vehicleHttp.RegisterRoutes(r.Group("/api"), vehicleHandler, limiter)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHttp.NewHandler(cfg.UserService, cfg.JWTManager), auth.RequirePrincipal())
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, limiter)
		pricingHttp.RegisterRoutes(v1, pricingHttp.NewHandler(cfg.Calculator), limiter)
		catalogHttp.RegisterRoutes(v1, catalogHttp.NewHandler(cfg.CatalogService))
		bookingHttp.RegisterRoutes(v1, bookingHttp.NewHandler(cfg.BookingService), limiter)
		customerHttp.RegisterRoutes(v1, customerHttp.NewHandler(cfg.CustomerService))
		blogHttp.RegisterRoutes(v1, blogHttp.NewHandler(cfg.BlogService))
		videoHttp.RegisterRoutes(v1, videoHttp.NewHandler(cfg.VideoService))
		shopHttp.RegisterRoutes(v1, shopHttp.NewHandler(cfg.ShopService))
		fileHttp.RegisterRoutes(v1, fileHttp.NewHandler(cfg.FileService))
	}

	return r, nil
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = cfg.ProdOrigins
	} else {
		config.AllowOrigins = devOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader}
	config.ExposeHeaders = []string{logging.RequestIDHeader, "Content-Disposition", "Retry-After"}
	config.MaxAge = 12 * time.Hour
	return config
}

// RegisterValidators installs the custom binding tags used by request DTOs.
// It must run before the first request is bound.
func RegisterValidators() error {
	if err := vehicleHttp.RegisterValidators(); err != nil {
		return err
	}
	return bookingHttp.RegisterValidators()
}
