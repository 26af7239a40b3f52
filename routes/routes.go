package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"glambook-backend/controllers"
	"glambook-backend/logger"
	"glambook-backend/models"
	"glambook-backend/repository"
	"glambook-backend/utils"
)

func SetupRouter(dir *repository.TenantDirectory, registry *repository.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	r.GET("/register/check-slug", controllers.CheckSlug)

	// Public tenant routes: the first path segment after the API root is the
	// business slug, resolved per request.
	public := r.Group("/api/t/:slug")
	public.Use(TenantMiddleware(dir, registry))
	{
		public.GET("", controllers.ResolveTenant)
		public.GET("/services", controllers.PublicCatalog)
		public.GET("/staff", controllers.PublicStaff)
		public.POST("/book", controllers.Book)
		public.GET("/coupons", controllers.MyCoupons)
	}

	// Admin routes: same slug resolution plus an owner token bound to the
	// resolved tenant.
	admin := r.Group("/api/a/:slug")
	admin.Use(TenantMiddleware(dir, registry), utils.AuthMiddleware(), RequireTenantMatch())
	{
		admin.PUT("", controllers.UpdateTenant)
		admin.DELETE("", controllers.DeleteTenant)

		clients := admin.Group("/clients")
		{
			clients.GET("", controllers.GetClients)
			clients.GET("/changes", controllers.GetClientChanges)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.GET("/:id/rewards", controllers.GetClientRewards)
			clients.POST("/:id/rewards", controllers.GenerateCoupon)
		}

		services := admin.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.PUT("/bulk-prices", controllers.BulkUpdatePrices)
			services.GET("/price-history", controllers.GetPriceHistory)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		products := admin.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		staff := admin.Group("/staff")
		{
			staff.GET("", controllers.GetStaff)
			staff.POST("", controllers.AddStaff)
			staff.POST("/cleanup", controllers.CleanupOrphans)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
			staff.GET("/:id/appointments", controllers.GetStaffAppointments)
		}

		appointments := admin.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id/status", controllers.UpdateAppointmentStatus)
		}

		rewards := admin.Group("/rewards")
		{
			rewards.GET("/history", controllers.GetRewardHistory)
			rewards.POST("/redeem", controllers.RedeemCoupon)
		}

		settings := admin.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("/salon", controllers.UpdateSalonSettings)
			settings.PUT("/theme", controllers.UpdateTheme)
			settings.GET("/changes", controllers.GetSettingsChanges)
			settings.GET("/notifications", controllers.GetNotificationLog)
		}
	}

	return r
}

// TenantMiddleware resolves the slug segment to an active tenant and stashes
// the tenant plus its repository bundle on the context. Unknown slugs get the
// "business not found" response, not an error.
func TenantMiddleware(dir *repository.TenantDirectory, registry *repository.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := dir.ResolveTenantFromPath("/" + c.Param("slug"))
		if tenant == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.Set("tenant", tenant)
		c.Set("repos", registry.For(tenant.ID))
		c.Next()
	}
}

// RequireTenantMatch rejects a valid token presented against a different
// tenant's routes.
func RequireTenantMatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("tenant")
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		tenant := v.(*models.Tenant)
		claim, _ := c.Get("tokenTenantId")
		if claimID, _ := claim.(string); claimID != tenant.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this business"})
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Get().Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
