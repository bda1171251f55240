package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yassirrachad97/Factura-sub000/internal/config"
	httpx "github.com/yassirrachad97/Factura-sub000/internal/http"
	"github.com/yassirrachad97/Factura-sub000/internal/http/handlers"
	"github.com/yassirrachad97/Factura-sub000/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc)
	invoiceH := handlers.NewInvoiceHandlers(c.InvoiceSvc, c.PaymentSvc)
	paymentH := handlers.NewPaymentHandlers(c.PaymentSvc)
	providerH := handlers.NewProviderHandlers(c.ProviderRepo, c.CategoryRepo)
	adminH := handlers.NewAdminHandlers(c.UserRepo)
	policyH := handlers.NewPolicyHandlers(c.PolicySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(authH, invoiceH, paymentH, providerH, adminH, policyH, jwtMW, casbinMW)

	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) == 0 {
		c.Casbin.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
		_ = c.Casbin.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
