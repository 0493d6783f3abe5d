package app

import (
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/docs"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/middleware"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Rutas públicas
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Rutas autenticadas
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		authGroup.GET("/catalog/tests", c.catalog.ListTests)
		authGroup.GET("/catalog/skills", c.catalog.ListSkills)
		authGroup.GET("/catalog/nodes", c.catalog.ListNodes)

		authGroup.GET("/dashboard", c.dashboard.GetDashboard)

		authGroup.GET("/progress", c.progress.List)
		authGroup.POST("/progress", c.progress.Record)

		authGroup.POST("/plans/smart", c.plan.GenerateSmartPlan)
		authGroup.GET("/plans/smart", c.plan.ListGeneratedPlans)
		authGroup.GET("/plans/smart/:id", c.plan.GetGeneratedPlan)
		authGroup.GET("/learning-plans", c.plan.ListLearningPlans)
		authGroup.POST("/learning-plans", c.plan.CreateLearningPlan)

		admin := authGroup.Group("/admin", middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/catalog/stats", c.admin.CatalogStats)
		}

		diagnostic := authGroup.Group("/diagnostic")
		{
			diagnostic.GET("/tests", c.diagnostic.ListTests)
			diagnostic.GET("/history", c.diagnostic.History)
			diagnostic.POST("/sessions", c.diagnostic.SelectTest)
			diagnostic.GET("/sessions/:id", c.diagnostic.GetSession)
			diagnostic.POST("/sessions/:id/start", c.diagnostic.StartSession)
			diagnostic.POST("/sessions/:id/answer", c.diagnostic.Answer)
			diagnostic.POST("/sessions/:id/navigate", c.diagnostic.Navigate)
			diagnostic.POST("/sessions/:id/hint", c.diagnostic.ToggleHint)
			diagnostic.POST("/sessions/:id/finish", c.diagnostic.Finish)
		}
	}
}
