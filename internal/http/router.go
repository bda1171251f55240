package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/yassirrachad97/Factura-sub000/internal/http/handlers"
	"github.com/yassirrachad97/Factura-sub000/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	ih *handlers.InvoiceHandlers,
	ph *handlers.PaymentHandlers,
	fh *handlers.ProviderHandlers,
	adh *handlers.AdminHandlers,
	plh *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.GET("/verify-email", ah.VerifyEmail)
	auth.POST("/login", ah.Login)
	auth.GET("/verify-token", ah.VerifyToken)
	auth.POST("/otp/generate", ah.GenerateOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/otp/resend", ah.ResendOTP)
	auth.POST("/password/reset", ah.ResetPassword)

	// Browse surface is public
	r.GET("/categories", fh.ListCategories)
	r.GET("/providers", fh.ListProviders)
	r.GET("/providers/:id", fh.GetProvider)

	// Gateway calls back with a signed raw body, not a session token
	r.POST("/payments/webhook", ph.Webhook)

	v := r.Group("/").Use(jwtmw.WithJWT())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/password/change", ah.ChangePassword)
	v.POST("/invoices/generate", ih.Generate)
	v.GET("/invoices", ih.List)
	v.GET("/invoices/:id", ih.GetByID)
	v.POST("/invoices/:id/pay", ih.Pay)
	v.POST("/payments/intent", ph.CreateIntent)
	v.POST("/payments/confirm", ph.Confirm)
	v.GET("/payments/status/:intentId", ph.Status)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/users", adh.ListUsers)
	adm.PUT("/users/:id/role", adh.UpdateUserRole)
	adm.POST("/categories", fh.CreateCategory)
	adm.PUT("/categories/:id", fh.UpdateCategory)
	adm.POST("/providers", fh.CreateProvider)
	adm.PUT("/providers/:id", fh.UpdateProvider)
	adm.GET("/policies", plh.List)
	adm.POST("/policies", plh.Add)
	adm.DELETE("/policies", plh.Remove)

	return r
}
