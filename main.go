package main

import (
	"log"
	"os"

	"p3m-backend/app/repository"
	"p3m-backend/app/service"
	"p3m-backend/database"
	"p3m-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}

	// =================================================================
	// INIT DB (POSTGRES + MONGODB)
	// =================================================================
	dbConn, err := database.InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA (USERS + SCHEMES)
	// =================================================================
	database.RunSeeders(dbConn.Postgres)

	// =================================================================
	// REPOSITORIES
	// =================================================================
	userRepo := repository.NewUserRepository(dbConn.Postgres)
	schemeRepo := repository.NewSchemeRepository(dbConn.Postgres)
	proposalRepo := repository.NewProposalRepository(dbConn.Postgres)
	reviewRepo := repository.NewReviewRepository(dbConn.Postgres)
	documentRepo := repository.NewDocumentRepository(dbConn.Postgres, dbConn.Mongo)
	dashboardRepo := repository.NewDashboardRepository(dbConn.Postgres)
	announcementRepo := repository.NewAnnouncementRepository(dbConn.Postgres)

	// =================================================================
	// SERVICES
	// =================================================================
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	schemeService := service.NewSchemeService(schemeRepo)
	proposalService := service.NewProposalService(proposalRepo, schemeRepo, userRepo, documentRepo)
	reviewService := service.NewReviewService(reviewRepo, proposalRepo, userRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)
	announcementService := service.NewAnnouncementService(announcementRepo)

	// =================================================================
	// ROUTER
	// =================================================================
	r := gin.Default()

	routes.AuthRoutes(r, authService)
	routes.UserRoutes(r, userService)
	routes.SchemeRoutes(r, schemeService)
	routes.ProposalRoutes(r, proposalService)
	routes.ReviewRoutes(r, reviewService)
	routes.DashboardRoutes(r, dashboardService)
	routes.AnnouncementRoutes(r, announcementService)

	// Root endpoint (optional)
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "P3M Backend API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER
	// =================================================================
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running at http://localhost:" + port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
