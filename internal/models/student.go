package models

import "time"

// Student is a row in the students table. PasswordHash is never serialized;
// it is read only to verify a login attempt.
type Student struct {
	RollNo        string    `gorm:"primaryKey;size:8" json:"roll_no"`
	FullName      string    `json:"full_name"`
	Gender        string    `json:"gender"`
	RoomNo        string    `json:"room_no"`
	HostelNo      string    `json:"hostel_no"`
	ProfilePicURL *string   `json:"profile_pic_url"`
	Email         *string   `gorm:"uniqueIndex" json:"email"`
	MobileNo      string    `gorm:"uniqueIndex;not null;size:10" json:"mobile_no"`
	PasswordHash  string    `json:"-"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProfileColumns is the column set returned by profile reads. It never
// includes password_hash.
var ProfileColumns = []string{
	"roll_no", "full_name", "gender", "room_no", "hostel_no",
	"profile_pic_url", "email", "mobile_no", "email_verified", "created_at",
}

// UpdatableColumns is the allow-list for PUT /api/student/:roll_no. roll_no
// is immutable and password_hash is not reachable through updates.
var UpdatableColumns = []string{
	"full_name", "gender", "room_no", "hostel_no",
	"profile_pic_url", "email", "mobile_no", "email_verified",
}
