package routes

import (
	"os"

	"github.com/fidelity-club/fidelity-be/config"
	"github.com/fidelity-club/fidelity-be/controllers"
	"github.com/fidelity-club/fidelity-be/middleware"
	"github.com/fidelity-club/fidelity-be/models"
	"github.com/fidelity-club/fidelity-be/websocket"
	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	r := gin.Default()

	// Initialize controllers
	authController := controllers.NewAuthController()
	userController := controllers.NewUserController()
	purchaseController := controllers.NewPurchaseController()
	couponController := controllers.NewCouponController()
	dashboardController := controllers.NewDashboardController()

	// Uploaded assets (avatars, coupon images, QR codes)
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
	}

	// Protected routes (any authenticated role)
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/users/profile", userController.GetProfile)
		protected.PUT("/users/profile", userController.UpdateProfile)
		protected.GET("/coupons", couponController.GetCoupons)
		protected.GET("/coupons/highlighted", couponController.GetHighlightedCoupons)
		protected.GET("/coupons/:id", couponController.GetCoupon)
		protected.GET("/ws", websocket.HandleWebSocket(config.WSHub))
	}

	// Client routes
	client := r.Group("/api")
	client.Use(middleware.AuthMiddleware())
	client.Use(middleware.RequireRoles(models.RoleClient))
	{
		client.POST("/coupons/redeem", couponController.RedeemCoupon)
		client.GET("/coupons/my-redemptions", couponController.GetMyRedemptions)
		client.GET("/dashboard/client", dashboardController.GetClientDashboard)
	}

	// Staff routes (receptionist or admin)
	staff := r.Group("/api")
	staff.Use(middleware.AuthMiddleware())
	staff.Use(middleware.RequireRoles(models.RoleReceptionist, models.RoleAdmin))
	{
		staff.POST("/purchases", purchaseController.RegisterPurchase)
		staff.POST("/coupons/use", couponController.UseCoupon)
		staff.GET("/dashboard/receptionist", dashboardController.GetReceptionistDashboard)
	}

	// Admin only routes
	admin := r.Group("/api")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		// User management
		admin.POST("/users", userController.CreateUser)
		admin.GET("/users", userController.GetUsers)
		admin.PUT("/users/:id", userController.UpdateUser)

		// Coupon management
		admin.GET("/coupons/admin/all", couponController.GetAllCoupons)
		admin.POST("/coupons", couponController.CreateCoupon)
		admin.PUT("/coupons/:id", couponController.UpdateCoupon)
		admin.DELETE("/coupons/:id", couponController.DeleteCoupon)

		admin.GET("/dashboard/admin", dashboardController.GetAdminDashboard)
	}

	return r
}
