package testutils

import (
	"fmt"
	"sync/atomic"
	"time"

	"madrese/auth-service/internal/model/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seq atomic.Int64

// CreateTestUser creates a test user with a unique national ID and phone. The
// password hash follows the last-four-digits rule.
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	n := seq.Add(1)
	now := time.Now()

	testUser := &user.User{
		NationalID:  fmt.Sprintf("%010d", 1000000000+n),
		Phone:       fmt.Sprintf("0912%07d", n),
		FirstName:   "Test",
		LastName:    fmt.Sprintf("User%d", n),
		Role:        user.RoleStudent,
		SchoolID:    "school-1",
		TrialEndsAt: now.Add(user.TrialPeriod),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if testUser.PasswordHash == "" {
		last4 := testUser.NationalID[len(testUser.NationalID)-4:]
		hash, _ := bcrypt.GenerateFromPassword([]byte(last4), bcrypt.MinCost)
		testUser.PasswordHash = string(hash)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

func WithNationalID(nationalID string) UserOption {
	return func(u *user.User) {
		u.NationalID = nationalID
	}
}

func WithPhone(phone string) UserOption {
	return func(u *user.User) {
		u.Phone = phone
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = &email
	}
}

// WithRole sets the role
func WithRole(role user.Role) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

func WithDisabled() UserOption {
	return func(u *user.User) {
		u.Disabled = true
	}
}

// WithPasswordHash sets the password hash directly
func WithPasswordHash(hash string) UserOption {
	return func(u *user.User) {
		u.PasswordHash = hash
	}
}
