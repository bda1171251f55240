package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yassirrachad97/Factura-sub000/domain"
	"github.com/yassirrachad97/Factura-sub000/internal/config"
	"github.com/yassirrachad97/Factura-sub000/internal/infrastructure/auth"
	"github.com/yassirrachad97/Factura-sub000/internal/infrastructure/database"
	"github.com/yassirrachad97/Factura-sub000/internal/infrastructure/notifications"
	"github.com/yassirrachad97/Factura-sub000/internal/infrastructure/payments"
	"github.com/yassirrachad97/Factura-sub000/internal/infrastructure/repositories"
	"github.com/yassirrachad97/Factura-sub000/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo     domain.UserRepository
	ProviderRepo domain.ProviderRepository
	CategoryRepo domain.CategoryRepository
	InvoiceRepo  domain.InvoiceRepository
	PaymentRepo  domain.PaymentRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Mailer      domain.Mailer
	Gateway     domain.PaymentGateway
	DeviceSvc   domain.DeviceTrustService
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	InvoiceSvc  domain.InvoiceService
	PaymentSvc  domain.PaymentService
	PolicySvc   domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	c.DB = gdb

	c.Casbin, err = auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.initRepositories()
	c.initServices()

	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.ProviderRepo = repositories.NewProviderRepository(c.DB)
	c.CategoryRepo = repositories.NewCategoryRepository(c.DB)
	c.InvoiceRepo = repositories.NewInvoiceRepository(c.DB)
	c.PaymentRepo = repositories.NewPaymentRepository(c.DB)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL, cfg.EmailVerifyTTL)
	c.Mailer = notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
	c.Gateway = payments.NewStripeGateway(cfg.StripeSecretKey, cfg.WebhookSecret)

	c.DeviceSvc = services.NewDeviceTrustService(c.UserRepo)

	otpConfig := services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	}
	c.OTPSvc = services.NewOTPService(c.Mailer, c.UserRepo, c.DeviceSvc, c.RedisClient, otpConfig)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.DeviceSvc,
		c.Mailer,
		cfg.SessionTTL,
		cfg.BaseURL,
	)

	c.InvoiceSvc = services.NewInvoiceService(c.InvoiceRepo, c.ProviderRepo)
	c.PaymentSvc = services.NewPaymentService(c.Gateway, c.PaymentRepo, c.InvoiceRepo, c.UserRepo, c.InvoiceSvc, cfg.Currency)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
