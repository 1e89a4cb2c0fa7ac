package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/audit"
	"github.com/BruksfildServices01/champa-store/internal/config"
	"github.com/BruksfildServices01/champa-store/internal/handlers"
	"github.com/BruksfildServices01/champa-store/internal/imaging"
	infraRepo "github.com/BruksfildServices01/champa-store/internal/infra/repository"
	"github.com/BruksfildServices01/champa-store/internal/metrics"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	"github.com/BruksfildServices01/champa-store/internal/session"
	"github.com/BruksfildServices01/champa-store/internal/storage"
	ucAccount "github.com/BruksfildServices01/champa-store/internal/usecase/account"
	ucCatalog "github.com/BruksfildServices01/champa-store/internal/usecase/catalog"
	ucDashboard "github.com/BruksfildServices01/champa-store/internal/usecase/dashboard"
	"github.com/BruksfildServices01/champa-store/internal/usecase/media"
	ucReview "github.com/BruksfildServices01/champa-store/internal/usecase/review"
)

// Deps are the process wide singletons built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Sessions  session.Store
	Storage   storage.Storage
	Processor *imaging.Processor
	Metrics   *metrics.Metrics
	Location  *time.Location

	// UploadsDir is served under Config.PublicBasePath when set.
	UploadsDir string
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	productRepo := infraRepo.NewProductGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	uploader := media.NewUploader(d.Processor, d.Storage, userRepo, productRepo, auditLogger)

	// ======================================================
	// USE CASES - ACCOUNTS
	// ======================================================
	registerUC := ucAccount.NewRegister(userRepo)
	loginUC := ucAccount.NewLogin(userRepo, d.Sessions)
	logoutUC := ucAccount.NewLogout(d.Sessions)
	currentUserUC := ucAccount.NewCurrentUser(userRepo, d.Sessions)
	setupUC := ucAccount.NewSetup(userRepo, registerUC)

	listUsersUC := ucAccount.NewListUsers(userRepo)
	deleteUserUC := ucAccount.NewDeleteUser(userRepo, auditLogger, uploader)
	promoteUC := ucAccount.NewPromoteCustomer(userRepo, auditLogger)
	createAdminUC := ucAccount.NewCreateAdmin(registerUC, auditLogger)

	// ======================================================
	// USE CASES - CATALOG & REVIEWS
	// ======================================================
	listProductsUC := ucCatalog.NewListProducts(productRepo)
	getProductUC := ucCatalog.NewGetProduct(productRepo)
	createProductUC := ucCatalog.NewCreateProduct(productRepo, auditLogger)
	updateProductUC := ucCatalog.NewUpdateProduct(productRepo, auditLogger, uploader)
	deleteProductUC := ucCatalog.NewDeleteProduct(productRepo, auditLogger, uploader)

	createReviewUC := ucReview.NewCreateReview(reviewRepo, auditLogger)
	listReviewsUC := ucReview.NewListReviews(reviewRepo)
	getReviewUC := ucReview.NewGetReview(reviewRepo)
	ratingSummaryUC := ucReview.NewRatingSummary(reviewRepo)
	updateReviewUC := ucReview.NewUpdateReview(reviewRepo, auditLogger, uploader)
	updateRatingUC := ucReview.NewUpdateRatingByCustomer(reviewRepo)
	deleteReviewUC := ucReview.NewDeleteReview(reviewRepo, auditLogger, uploader)

	// ======================================================
	// USE CASES - DASHBOARD
	// ======================================================
	overviewUC := ucDashboard.NewOverview(dashboardRepo, d.Location)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, d.Metrics)
	meHandler := handlers.NewMeHandler()
	setupHandler := handlers.NewSetupHandler(setupUC)
	userHandler := handlers.NewUserHandler(listUsersUC, deleteUserUC, promoteUC, createAdminUC)

	productHandler := handlers.NewProductHandler(
		listProductsUC,
		getProductUC,
		createProductUC,
		updateProductUC,
		deleteProductUC,
		ratingSummaryUC,
	)

	reviewHandler := handlers.NewReviewHandler(
		createReviewUC,
		listReviewsUC,
		getReviewUC,
		updateReviewUC,
		updateRatingUC,
		deleteReviewUC,
	)

	dashboardHandler := handlers.NewDashboardHandler(overviewUC)
	uploadHandler := handlers.NewUploadHandler(uploader, d.Config.MaxUploadBytes, d.Metrics)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Location)

	// ======================================================
	// HEALTH, METRICS & STATIC FILES
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/ping", healthHandler.Ping)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	if d.UploadsDir != "" {
		r.Static(d.Config.PublicBasePath, d.UploadsDir)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC STOREFRONT
		// ------------------------------
		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.GET("/products/:id/rating", productHandler.Rating)

		api.GET("/reviews", reviewHandler.List)
		api.POST("/reviews", reviewHandler.CreateByCustomer)
		api.PUT("/reviews/:id", reviewHandler.UpdateRating)
		api.POST("/reviews/upload-image", uploadHandler.Review)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", middleware.RequireUser(currentUserUC), meHandler.GetMe)

		api.GET("/setup/status", setupHandler.Status)
		api.POST("/setup/first-admin", setupHandler.FirstAdmin)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(currentUserUC))
		{
			admin.GET("/me", meHandler.GetMe)
			admin.GET("/dashboard", dashboardHandler.Get)
			admin.POST("/upload-profile", uploadHandler.Profile)

			admin.GET("/products", productHandler.List)
			admin.GET("/products/:id", productHandler.Get)
			admin.POST("/products", productHandler.Create)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)
			admin.POST("/products/:id/upload-image", uploadHandler.Product)

			admin.GET("/reviews", reviewHandler.List)
			admin.GET("/reviews/:id", reviewHandler.Get)
			admin.POST("/reviews", reviewHandler.CreateByAdmin)
			admin.PUT("/reviews/:id", reviewHandler.Update)
			admin.DELETE("/reviews/:id", reviewHandler.Delete)

			admin.GET("/customers", userHandler.ListCustomers)
			admin.DELETE("/customers/:id", userHandler.DeleteCustomer)
			admin.POST("/customers/:id/promote", userHandler.PromoteCustomer)

			admin.GET("/admins", userHandler.ListAdmins)
			admin.POST("/admins", userHandler.CreateAdmin)
			admin.DELETE("/admins/:id", userHandler.DeleteAdmin)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
