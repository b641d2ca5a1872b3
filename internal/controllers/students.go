package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"hostel-backend/internal/dberr"
	"hostel-backend/internal/models"
	"hostel-backend/internal/otp"
	"hostel-backend/internal/roster"
	"hostel-backend/internal/utils"
)

const (
	rollNoFormatError   = "Invalid roll number format. Must be 8 digits (e.g., 11232763)"
	mobileNoFormatError = "Invalid mobile number format. Must be 10 digits (e.g., 9876543210)"
)

type StudentController struct {
	db     *gorm.DB
	roster roster.Roster // non-nil only in roster-gated signup mode
	otps   otp.Store     // nil when verification infrastructure is absent
	email  *utils.SMTPClient
}

func NewStudentController(db *gorm.DB, r roster.Roster, otps otp.Store, email *utils.SMTPClient) *StudentController {
	return &StudentController{db: db, roster: r, otps: otps, email: email}
}

type signupPayload struct {
	FullName      string  `json:"full_name"`
	RollNo        string  `json:"roll_no"`
	RoomNo        string  `json:"room_no"`
	HostelNo      string  `json:"hostel_no"`
	ProfilePicURL *string `json:"profile_pic_url"`
	Password      string  `json:"password"`
	Email         string  `json:"email"`
	MobileNo      string  `json:"mobile_no"`
}

// requiredFields returns the signup fields that must be non-empty. With a
// roster configured, identity fields come from the roster instead of the
// client, so only the minimal set is required.
func (s *StudentController) requiredFields(p *signupPayload) map[string]string {
	if s.roster != nil {
		return map[string]string{
			"roll_no":   p.RollNo,
			"mobile_no": p.MobileNo,
			"password":  p.Password,
		}
	}
	return map[string]string{
		"full_name": p.FullName,
		"roll_no":   p.RollNo,
		"room_no":   p.RoomNo,
		"hostel_no": p.HostelNo,
		"password":  p.Password,
		"email":     p.Email,
		"mobile_no": p.MobileNo,
	}
}

var signupFieldOrder = []string{"full_name", "roll_no", "room_no", "hostel_no", "password", "email", "mobile_no"}

func (s *StudentController) SignUp(c *gin.Context) {
	var p signupPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	required := s.requiredFields(&p)
	var missing []string
	for _, name := range signupFieldOrder {
		if v, ok := required[name]; ok && v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "required": missing})
		return
	}
	if !utils.ValidRollNo(p.RollNo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": rollNoFormatError})
		return
	}
	if !utils.ValidMobileNo(p.MobileNo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": mobileNoFormatError})
		return
	}

	student := models.Student{
		RollNo:        p.RollNo,
		FullName:      p.FullName,
		RoomNo:        p.RoomNo,
		HostelNo:      p.HostelNo,
		ProfilePicURL: p.ProfilePicURL,
		MobileNo:      p.MobileNo,
	}
	if p.Email != "" {
		student.Email = &p.Email
	}

	if s.roster != nil {
		entry, err := s.roster.Lookup(c.Request.Context(), p.RollNo)
		if err != nil {
			if errors.Is(err, roster.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error":   "Roll number not found in student database",
					"roll_no": p.RollNo,
				})
				return
			}
			log.Error().Err(err).Str("roll_no", p.RollNo).Msg("roster lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify roll number"})
			return
		}
		if entry.FullName == "" || entry.Gender == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid student data in database",
				"roll_no": p.RollNo,
			})
			return
		}
		student.FullName = entry.FullName
		student.Gender = entry.Gender
	}

	hash, err := utils.HashPassword(p.Password)
	if err != nil {
		log.Error().Err(err).Msg("password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register student"})
		return
	}
	student.PasswordHash = hash

	if err := s.db.Create(&student).Error; err != nil {
		if s.respondDuplicate(c, err) {
			return
		}
		log.Error().Err(err).Str("roll_no", p.RollNo).Msg("student insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register student"})
		return
	}

	// send verification OTP (non-blocking); failures never affect signup
	if p.Email != "" && s.otps != nil && s.email != nil {
		go s.sendVerificationOTP(p.Email, student.FullName)
	}

	if s.roster != nil {
		c.JSON(http.StatusCreated, gin.H{
			"success":   true,
			"message":   "Student registered successfully",
			"roll_no":   student.RollNo,
			"full_name": student.FullName,
			"gender":    student.Gender,
			"email":     student.Email,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Student registered successfully",
		"roll_no": student.RollNo,
	})
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *StudentController) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil || p.Username == "" || p.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	var student models.Student
	err := s.db.
		Where("roll_no = ? OR email = ? OR mobile_no = ?", p.Username, p.Username, p.Username).
		First(&student).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("login lookup failed")
		}
		// same body as a wrong password: no account enumeration
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := utils.CheckPasswordHash(student.PasswordHash, p.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"student": student,
	})
}

func (s *StudentController) GetProfile(c *gin.Context) {
	rollNo := c.Param("roll_no")
	if !utils.ValidRollNo(rollNo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": rollNoFormatError})
		return
	}

	var student models.Student
	err := s.db.Select(models.ProfileColumns).Where("roll_no = ?", rollNo).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		log.Error().Err(err).Str("roll_no", rollNo).Msg("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "student": student})
}

func (s *StudentController) UpdateProfile(c *gin.Context) {
	rollNo := c.Param("roll_no")
	if !utils.ValidRollNo(rollNo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": rollNoFormatError})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	var existing models.Student
	err := s.db.Select("roll_no").Where("roll_no = ?", rollNo).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		log.Error().Err(err).Str("roll_no", rollNo).Msg("student lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}

	// intersect the body with the allow-list; everything else is ignored
	updates := make(map[string]any)
	var updatedFields []string
	for _, col := range models.UpdatableColumns {
		if v, ok := body[col]; ok {
			updates[col] = v
			updatedFields = append(updatedFields, col)
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No valid fields provided for update",
			"allowed": models.UpdatableColumns,
		})
		return
	}

	if err := s.db.Model(&models.Student{}).Where("roll_no = ?", rollNo).Updates(updates).Error; err != nil {
		if s.respondDuplicate(c, err) {
			return
		}
		log.Error().Err(err).Str("roll_no", rollNo).Msg("student update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}

	var student models.Student
	if err := s.db.Select(models.ProfileColumns).Where("roll_no = ?", rollNo).First(&student).Error; err != nil {
		log.Error().Err(err).Str("roll_no", rollNo).Msg("reload after update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Student updated successfully",
		"roll_no":        rollNo,
		"updated_fields": updatedFields,
		"student":        student,
	})
}

// respondDuplicate writes the 409 response when err is a unique-constraint
// violation. It reports whether it handled the error.
func (s *StudentController) respondDuplicate(c *gin.Context, err error) bool {
	col, ok := dberr.DuplicateColumn(err)
	if !ok {
		return false
	}
	msg := "Duplicate entry found"
	switch col {
	case "roll_no":
		msg = "Roll number already exists"
	case "email":
		msg = "Email already exists"
	case "mobile_no":
		msg = "Mobile number already exists"
	}
	c.JSON(http.StatusConflict, gin.H{"error": msg})
	return true
}
