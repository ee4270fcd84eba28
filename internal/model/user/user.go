package user

import "time"

// TrialPeriod 试用期
const TrialPeriod = 14 * 24 * time.Hour

type Role string

const (
	RoleStudent           Role = "student"
	RoleTeacher           Role = "teacher"
	RoleCounselor         Role = "counselor"
	RoleEducationalDeputy Role = "educational_deputy"
	RoleLiaisonOffice     Role = "liaison_office"
	RoleParent            Role = "parent"
	RolePrincipal         Role = "principal"
	RoleVicePrincipal     Role = "vice_principal"
)

var roles = []Role{
	RoleStudent,
	RoleTeacher,
	RoleCounselor,
	RoleEducationalDeputy,
	RoleLiaisonOffice,
	RoleParent,
	RolePrincipal,
	RoleVicePrincipal,
}

// Roles returns the closed role set in declaration order.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

type User struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NationalID   string    `gorm:"column:national_id;type:varchar(10);not null;uniqueIndex" json:"nationalId"`
	Phone        string    `gorm:"column:phone;type:varchar(11);not null;uniqueIndex" json:"phoneNumber"`
	Email        *string   `gorm:"column:email;type:varchar(100)" json:"email,omitempty"`
	FirstName    string    `gorm:"column:first_name;type:varchar(100);not null" json:"firstName"`
	LastName     string    `gorm:"column:last_name;type:varchar(100);not null" json:"lastName"`
	Role         Role      `gorm:"column:role;type:varchar(32);not null" json:"role"`
	SchoolID     string    `gorm:"column:school_id;type:varchar(64);not null" json:"schoolId"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	TrialEndsAt  time.Time `gorm:"column:trial_ends_at;not null" json:"trialEndsAt"`
	Disabled     bool      `gorm:"column:disabled;not null;default:false" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "auth_users"
}

// TrialActive 是否处于试用期内
func (u *User) TrialActive(now time.Time) bool {
	return now.Before(u.TrialEndsAt)
}

// FullName 姓名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
