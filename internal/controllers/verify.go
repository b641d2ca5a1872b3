package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hostel-backend/internal/models"
	"hostel-backend/internal/otp"
)

func otpTTL() time.Duration {
	ttlMin := 15
	if v := os.Getenv("OTP_TTL_MIN"); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			ttlMin = t
		}
	}
	return time.Minute * time.Duration(ttlMin)
}

// sendVerificationOTP generates an OTP, stores it and mails it. Runs in its
// own goroutine; errors are logged and dropped.
func (s *StudentController) sendVerificationOTP(email, fullName string) {
	code, err := otp.GenerateNumeric(6)
	if err != nil {
		log.Error().Err(err).Msg("could not generate otp")
		return
	}

	ttl := otpTTL()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	key := fmt.Sprintf("verify:%s", email)
	if err := s.otps.Set(ctx, key, code, ttl); err != nil {
		log.Error().Err(err).Msg("could not store otp")
		return
	}

	body := fmt.Sprintf("Hello %s,\n\nYour email verification OTP is: %s\nThis OTP will expire in %d minutes.\n\nIf you didn't sign up, ignore this email.",
		fullName, code, int(ttl.Minutes()))
	if err := s.email.Send(email, "Verify your email", body); err != nil {
		log.Error().Err(err).Str("email", email).Msg("could not send verification email")
	}
}

type verifyPayload struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyEmail checks the OTP mailed at signup and marks the account's email
// as verified.
func (s *StudentController) VerifyEmail(c *gin.Context) {
	if s.otps == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email verification is not available"})
		return
	}

	var p verifyPayload
	if err := c.ShouldBindJSON(&p); err != nil || p.Email == "" || p.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		return
	}

	key := fmt.Sprintf("verify:%s", p.Email)
	stored, err := s.otps.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired or not found"})
			return
		}
		log.Error().Err(err).Msg("otp lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	if stored != p.OTP {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OTP"})
		return
	}

	// delete OTP once used
	_ = s.otps.Del(c.Request.Context(), key)

	res := s.db.Model(&models.Student{}).
		Where("email = ?", p.Email).
		Update("email_verified", true)
	if res.Error != nil {
		log.Error().Err(res.Error).Str("email", p.Email).Msg("could not mark email verified")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	// the email may have been changed via profile update after the OTP was issued
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
}
