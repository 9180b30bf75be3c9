package main

import (
	"time"

	"blogapi/auth"
	"blogapi/config"
	"blogapi/db/mysql"
	"blogapi/middleware"
	"blogapi/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration: ", err)
	}

	database, err := mysql.GetDatabase(&cfg.DB)
	if err != nil {
		log.Fatal("received err when attempting to connect to DB: ", err)
	}
	defer database.Close()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(log.StandardLogger()))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	routes.AddHealthCheckRoutes(api)
	routes.AddUserRoutes(api, database, tokens)
	routes.AddPostRoutes(api, database, tokens)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("error when attempting to run web server: ", err)
	}
}
