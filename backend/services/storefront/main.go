package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	aws_pkg "github.com/yashrajoria/storefront/backend/pkg/aws"
	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/common/logger"
	commonmw "github.com/yashrajoria/storefront/backend/services/common/middleware"
	"github.com/yashrajoria/storefront/backend/services/storefront/controllers"
	"github.com/yashrajoria/storefront/backend/services/storefront/database"
	"github.com/yashrajoria/storefront/backend/services/storefront/kafka"
	"github.com/yashrajoria/storefront/backend/services/storefront/repository"
	"github.com/yashrajoria/storefront/backend/services/storefront/routes"
	"github.com/yashrajoria/storefront/backend/services/storefront/services"
)

const serviceName = "storefront"

func main() {
	bootLogger := logger.Initialize(os.Getenv("ENV"))

	cfg, err := LoadConfig(bootLogger)
	if err != nil {
		bootLogger.Fatal("Config load failed", zap.Error(err))
	}

	// --- AWS setup (optional pieces) ---
	awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
	if err != nil {
		bootLogger.Warn("AWS config unavailable; S3, SNS and CloudWatch disabled", zap.Error(err))
	}
	awsReady := err == nil

	log := bootLogger
	if awsReady && cfg.CloudWatchEnabled {
		cw, cwErr := aws_pkg.NewCloudWatchLogsClient(context.Background(), awsCfg, cfg.LogGroup, serviceName)
		if cwErr != nil {
			bootLogger.Warn("CloudWatch Logs init failed (non-fatal)", zap.Error(cwErr))
		} else {
			log = logger.InitializeWithWriter(cfg.Env, io.Writer(cw))
		}
	}
	defer log.Sync()

	var metricsClient *aws_pkg.MetricsClient
	if awsReady {
		metricsClient = aws_pkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.CloudWatchEnabled)
	}

	// --- Database ---
	if err := database.Connect(context.Background(), cfg.Database, log); err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(database.DB); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	// --- Cart store ---
	var cartRepo repository.CartRepository
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal("Redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		cartRepo = repository.NewRedisCartRepository(rdb, cfg.CartTTL)
		log.Info("Using redis cart store")
	} else {
		cartRepo = repository.NewMemoryCartRepository(cfg.CartTTL)
		log.Info("REDIS_URL not set; using in-memory cart store")
	}

	// --- Order events ---
	var publishers services.MultiPublisher
	if awsReady && cfg.OrderSNSTopicARN != "" {
		publishers = append(publishers, services.NewSNSOrderPublisher(aws_pkg.NewSNSClient(awsCfg), cfg.OrderSNSTopicARN))
	}
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic, log)
		publishers = append(publishers, producer)
	}

	// --- Image uploads ---
	var images services.ImageStore
	if awsReady && cfg.S3Bucket != "" {
		images = aws_pkg.NewS3Uploader(awsCfg, cfg.S3Bucket, cfg.S3PublicURL)
	}

	sessions, err := services.NewSessionService(cfg.SessionSecret)
	if err != nil {
		log.Fatal("Session setup failed", zap.Error(err))
	}

	// --- Dependency injection ---
	productRepo := repository.NewGormProductRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	userRepo := repository.NewGormUserRepository(database.DB)

	var metrics services.MetricsRecorder
	if metricsClient != nil {
		metrics = metricsClient
	}
	var events services.OrderEventPublisher
	if len(publishers) > 0 {
		events = publishers
	}

	checkoutService := services.NewCheckoutService(orderRepo, services.NewPaymentAuthorizer(cfg.PaymentDeclineRate), events, metrics, cfg.CheckoutDelay, log)
	productService := services.NewProductService(productRepo, images, cfg.S3Prefix, metrics, log)
	cartService := services.NewCartService(cartRepo, productRepo, checkoutService, metrics, log)
	receiptService := services.NewReceiptService(orderRepo, productRepo, log)
	orderService := services.NewOrderService(orderRepo, events, metrics, log)
	authService := services.NewAuthService(userRepo, 0, log)

	handlers := routes.Controllers{
		Products: controllers.NewProductController(productService, controllers.NewRequestValidator()),
		Carts:    controllers.NewCartController(cartService),
		Orders:   controllers.NewOrderController(checkoutService, orderService, receiptService),
		Receipts: controllers.NewReceiptController(receiptService),
		Auth:     controllers.NewAuthController(authService, sessions, cfg.IsProduction()),
	}

	// --- HTTP router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(commonmw.RequestLogger(log))
	r.Use(commonmw.MetricsMiddleware(metricsClient, serviceName))
	r.Use(commonmw.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(apperrors.ErrorMiddleware())

	// Request timeout; the checkout delay must fit inside it
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})

	routes.RegisterRoutes(r, handlers, routes.Options{
		SecureCookies:  cfg.IsProduction(),
		AuthPerMinute:  cfg.AuthRatePerMinute,
		AuthBurst:      cfg.AuthRateBurst,
		SessionDecoder: sessions,
	})

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Storefront started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Kafka producer close error", zap.Error(err))
		}
	}
	if err := database.Close(); err != nil {
		log.Error("Database close error", zap.Error(err))
	}

	log.Info("Storefront stopped gracefully")
}
