package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"paperdesk/internal/config"
	"paperdesk/internal/entity"
	"paperdesk/internal/middleware"
	"paperdesk/pkg/storage"

	adminHttp "paperdesk/internal/modules/admin/delivery/http"
	adminService "paperdesk/internal/modules/admin/service"

	approvalHttp "paperdesk/internal/modules/approval/delivery/http"
	approvalRepo "paperdesk/internal/modules/approval/repository"
	approvalService "paperdesk/internal/modules/approval/service"

	paperHttp "paperdesk/internal/modules/paper/delivery/http"
	paperRepo "paperdesk/internal/modules/paper/repository"
	paperService "paperdesk/internal/modules/paper/service"

	statHttp "paperdesk/internal/modules/stat/delivery/http"
	statRepo "paperdesk/internal/modules/stat/repository"
	statService "paperdesk/internal/modules/stat/service"

	userHttp "paperdesk/internal/modules/user/delivery/http"
	userRepo "paperdesk/internal/modules/user/repository"
	userService "paperdesk/internal/modules/user/service"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func New(cfg *config.Config, db *gorm.DB, files storage.FileStorage, log *zap.Logger) *Server {
	users := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.AllowedEmailDomain)
	authHandler := userHttp.NewAuthHandler(authSvc)

	papers := paperRepo.NewPaperRepository(db)
	paperSvc := paperService.NewPaperService(papers, files, log)
	paperHandler := paperHttp.NewPaperHandler(paperSvc, cfg.MaxUploadSize)

	approvals := approvalRepo.NewApprovalRepository(db)
	approvalSvc := approvalService.NewApprovalService(approvals)
	approvalHandler := approvalHttp.NewApprovalHandler(approvalSvc)

	stats := statRepo.NewStatRepository(db)
	statSvc := statService.NewStatService(stats, approvals)
	statHandler := statHttp.NewStatHandler(statSvc)

	adminSvc := adminService.NewAdminService(users)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Research Paper Database API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":       "/api/auth/*",
				"papers":     "/api/papers/*",
				"admin":      "/api/admin/*",
				"statistics": "/api/statistics",
			},
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/papers", paperHandler.List)
		protected.GET("/papers/:id", paperHandler.Get)
		protected.POST("/papers", paperHandler.Create)
		protected.PUT("/papers/:id", paperHandler.Update)
		protected.DELETE("/papers/:id", paperHandler.Delete)
		protected.GET("/papers/:id/pdf", paperHandler.FetchPDF)

		protected.GET("/users/my-papers", paperHandler.MyPapers)

		protected.GET("/statistics", statHandler.Summary)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/approval-requests", approvalHandler.List)
			adminGroup.PUT("/approval-requests/:id", approvalHandler.Review)
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id/role", adminHandler.UpdateRole)
		}
	}

	return &Server{engine: router, cfg: cfg}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

// SeedAdmin provisions the bootstrap admin account at first startup.
func SeedAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	email := "admin@" + cfg.AllowedEmailDomain

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         entity.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Info("default admin created", zap.String("email", email))
	return nil
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
