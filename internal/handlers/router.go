package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

const serviceName = "daily-fit-server"

type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	classHandler   *ClassHandler
	cartHandler    *CartHandler
	paymentHandler *PaymentHandler
	reviewHandler  *ReviewHandler
	authMiddleware *AuthMiddleware

	serviceManager services.ServiceManager
	metrics        *Metrics
	logger         utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	metrics *Metrics,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), validator, logger),
		userHandler:    NewUserHandler(serviceManager.User(), serviceManager.Access(), logger),
		classHandler:   NewClassHandler(serviceManager.Class(), logger),
		cartHandler:    NewCartHandler(serviceManager.Cart(), logger),
		paymentHandler: NewPaymentHandler(serviceManager.Checkout(), serviceManager.Report(), logger),
		reviewHandler:  NewReviewHandler(serviceManager.Review(), logger),
		authMiddleware: NewAuthMiddleware(serviceManager.Auth(), serviceManager.Access(), logger),
		serviceManager: serviceManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// SetupRoutes mounts the route table at the root and again under /api/v1
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Daily Fit Server is Running...")
	})

	router.GET("/health", hm.health)
	if hm.metrics != nil {
		router.GET("/metrics", hm.metrics.Handler())
	}

	hm.registerRoutes(router.Group(""))
	hm.registerRoutes(router.Group("/api/v1"))
}

func (hm *HandlerManager) registerRoutes(rg *gin.RouterGroup) {
	authed := hm.authMiddleware.RequireAuthenticated()
	admin := hm.authMiddleware.RequireAdmin()
	staff := hm.authMiddleware.RequireAdminOrInstructor()

	// Auth routes - public
	rg.POST("/jwt", hm.authHandler.IssueToken)
	rg.POST("/auth/casdoor", hm.authHandler.CasdoorLogin)

	users := rg.Group("/users")
	{
		users.GET("", authed, staff, hm.userHandler.ListUsers)
		users.GET("/instructor", hm.userHandler.ListInstructors)
		users.POST("", hm.userHandler.RegisterUser)

		// Role management - Admins only
		users.PATCH("/admin/:id", authed, admin, hm.userHandler.MakeAdmin)
		users.PATCH("/instructor/:id", authed, admin, hm.userHandler.MakeInstructor)
		users.DELETE("/:id", authed, admin, hm.userHandler.DeleteUser)

		// Role queries answer only about the requester
		users.GET("/admin/:email", authed, hm.userHandler.CheckAdmin)
		users.GET("/instructor/:email", authed, hm.userHandler.CheckInstructor)
	}

	classes := rg.Group("/classes")
	{
		classes.GET("", authed, admin, hm.classHandler.ListClasses)
		classes.GET("/approved", hm.classHandler.ListApproved)
		classes.GET("/:email", authed, hm.classHandler.ListByInstructor)
		classes.POST("", authed, staff, hm.classHandler.SubmitClass)

		// Lifecycle - Admins only
		classes.PATCH("/approved/:id", authed, admin, hm.classHandler.ApproveClass)
		classes.PATCH("/denied/:id", authed, admin, hm.classHandler.DenyClass)
		classes.PUT("/:id", authed, admin, hm.classHandler.AttachFeedback)
		classes.DELETE("/:id", authed, admin, hm.classHandler.DeleteClass)
	}

	carts := rg.Group("/carts")
	carts.Use(authed)
	{
		carts.GET("", hm.cartHandler.ListCart)
		carts.POST("", hm.cartHandler.AddToCart)
		carts.DELETE("/:id", hm.cartHandler.RemoveFromCart)
	}

	rg.GET("/reviews", hm.reviewHandler.ListReviews)

	rg.POST("/create-payment-intent", authed, hm.paymentHandler.CreatePaymentIntent)
	payments := rg.Group("/payments")
	payments.Use(authed)
	{
		payments.POST("", hm.paymentHandler.RecordPayment)
		payments.GET("", hm.paymentHandler.ListPayments)
		payments.GET("/export", admin, hm.paymentHandler.ExportPayments)
	}
}

func (hm *HandlerManager) health(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		utils.GetLogger(c, hm.logger).Warn("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}
