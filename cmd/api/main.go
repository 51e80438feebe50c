package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/config"
	dbpkg "github.com/MonCabinetApps/cabinet-scheduler/internal/db"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/routes"
)

func main() {

	// .env absent en prod : les variables viennent de l'environnement
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

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
