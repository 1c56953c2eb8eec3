package router

import (
	"github.com/blues/afs/internal/config"
	"github.com/blues/afs/internal/handler"
	"github.com/blues/afs/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "agrifund-service",
		})
	})

	authHandler := handler.NewAuthHandler(db, cfg.Auth)
	campaignHandler := handler.NewCampaignHandler(db)
	reportHandler := handler.NewReportHandler(db)

	authRequired := handler.AuthRequired(authHandler.AuthLogic())

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 注册认证路由
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// 众筹活动路由，列表和详情公开
		campaigns := v1.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.Index)
			campaigns.GET("/:id", campaignHandler.Show)
			campaigns.POST("", authRequired,
				handler.RequireRole(model.UserRoleFarmer, "Only farmers can create campaigns."),
				campaignHandler.Store)
			campaigns.POST("/:id/approve", authRequired,
				handler.RequireRole(model.UserRoleAdmin, "Only admins can approve campaigns."),
				campaignHandler.Approve)
			campaigns.POST("/:id/reject", authRequired,
				handler.RequireRole(model.UserRoleAdmin, "Only admins can reject campaigns."),
				campaignHandler.Reject)
			campaigns.POST("/:id/fund", authRequired,
				handler.RequireRole(model.UserRoleInvestor, "Only investors can fund campaigns."),
				campaignHandler.Fund)
		}

		// 报表路由，全部需要登录且按角色限流
		reports := v1.Group("/reports", authRequired)
		{
			admin := reports.Group("/admin",
				handler.RequireRole(model.UserRoleAdmin, "Only admins can access this report."))
			{
				admin.GET("/dashboard", reportHandler.AdminDashboard)
				admin.GET("/campaigns", reportHandler.AdminCampaignsReport)
			}

			farmer := reports.Group("/farmer",
				handler.RequireRole(model.UserRoleFarmer, "Only farmers can access this report."))
			{
				farmer.GET("/dashboard", reportHandler.FarmerDashboard)
				farmer.GET("/campaigns", reportHandler.FarmerCampaignsReport)
				farmer.GET("/campaigns/:id", reportHandler.FarmerCampaignReport)
			}

			investor := reports.Group("/investor",
				handler.RequireRole(model.UserRoleInvestor, "Only investors can access this report."))
			{
				investor.GET("/dashboard", reportHandler.InvestorDashboard)
			}
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
