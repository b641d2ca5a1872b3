package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"hostel-backend/internal/controllers"
	"hostel-backend/internal/db"
	"hostel-backend/internal/middleware"
	"hostel-backend/internal/otp"
	"hostel-backend/internal/roster"
	"hostel-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	dbConn := db.Init()

	// redis backs the roster in roster-gated signup mode and OTP storage in
	// both modes; it is required only for the former.
	var rdb *goredis.Client
	var studentRoster roster.Roster
	var otps otp.Store
	rosterMode := os.Getenv("SIGNUP_MODE") == "roster"
	if rosterMode || os.Getenv("REDIS_ADDR") != "" {
		rdb = roster.InitRedis()
		otps = otp.NewRedisStore(rdb)
	}
	if rosterMode {
		studentRoster = roster.NewRedisRoster(rdb)
	}

	email := utils.NewSMTPClient(
		os.Getenv("SMTP_HOST"),
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
		os.Getenv("FROM_EMAIL"),
	)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error().Interface("panic", err).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(middleware.CORS())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	students := controllers.NewStudentController(dbConn, studentRoster, otps, email)

	api := r.Group("/api")
	{
		api.POST("/signup", students.SignUp)
		api.POST("/login", students.Login)
		api.POST("/verify-email", students.VerifyEmail)
		api.GET("/student/:roll_no", students.GetProfile)
		api.PUT("/student/:roll_no", students.UpdateProfile)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Bool("roster_mode", rosterMode).Msg("starting server")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
