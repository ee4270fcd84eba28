// Package identity is the user store of the authentication core.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/model/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

// Store is what the session manager and the registration service need from
// the user table.
type Store interface {
	FindByNationalID(ctx context.Context, nationalID string) (*user.User, error)
	FindByPhone(ctx context.Context, phone string) (*user.User, error)
	FindByID(ctx context.Context, id int) (*user.User, error)
	Create(ctx context.Context, p user.Profile) (*user.User, error)
	VerifyPassword(u *user.User, supplied string) bool
}

// Repository 用户数据访问层
type Repository struct {
	db         *gorm.DB
	bcryptCost int
	now        func() time.Time
}

type Option func(*Repository)

// WithBcryptCost lowers the hashing cost in tests.
func WithBcryptCost(cost int) Option {
	return func(r *Repository) {
		r.bcryptCost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository 创建用户仓库实例
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{
		db:         db,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ Store = (*Repository)(nil)

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (r *Repository) FindByNationalID(ctx context.Context, nationalID string) (*user.User, error) {
	return r.findOne(ctx, "national_id = ?", nationalID)
}

func (r *Repository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *Repository) FindByID(ctx context.Context, id int) (*user.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// Create inserts a user for a completed registration. The existence check
// only yields a clean error early; the unique indexes decide races.
func (r *Repository) Create(ctx context.Context, p user.Profile) (*user.User, error) {
	role, ok := user.ParseRole(p.Role)
	if !ok {
		return nil, autherr.InvalidProfile("role", "نقش انتخاب شده معتبر نیست")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DerivePassword(p.NationalID)), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := r.now()
	u := &user.User{
		NationalID:   p.NationalID,
		Phone:        p.Phone,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Role:         role,
		SchoolID:     strings.TrimSpace(p.SchoolID),
		PasswordHash: string(hash),
		TrialEndsAt:  now.Add(user.TrialPeriod),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		u.Email = &email
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&user.User{}).
			Where("national_id = ? OR phone = ?", u.NationalID, u.Phone).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return autherr.ErrDuplicateIdentity
		}
		return tx.Create(u).Error
	})
	if err != nil {
		if errors.Is(err, autherr.ErrDuplicateIdentity) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create user: %w", autherr.ErrDuplicateIdentity)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// SetDisabled soft-disables or re-enables an account. Users are never deleted.
func (r *Repository) SetDisabled(ctx context.Context, id int, disabled bool) error {
	res := r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Update("disabled", disabled)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifyPassword accepts exactly the last four digits of the national ID.
func (r *Repository) VerifyPassword(u *user.User, supplied string) bool {
	if u == nil || supplied != DerivePassword(u.NationalID) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(supplied)) == nil
}

// DerivePassword 由国家身份证号后四位生成密码
func DerivePassword(nationalID string) string {
	if len(nationalID) < 4 {
		return nationalID
	}
	return nationalID[len(nationalID)-4:]
}
