package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/AtelierAutoPro/garage-manager/internal/config"
	dbpkg "github.com/AtelierAutoPro/garage-manager/internal/db"
	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/routes"
)

func main() {

	// .env facultatif, les variables d'environnement priment
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
