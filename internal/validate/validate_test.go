package validate

import (
	"errors"
	"testing"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		value   string
		wantErr error
	}{
		{"national id ok", NationalID, "1234567890", nil},
		{"national id short", NationalID, "123456789", autherr.ErrInvalidNationalIDFormat},
		{"national id letters", NationalID, "12345abcde", autherr.ErrInvalidNationalIDFormat},
		{"national id signed", NationalID, "+123456789", autherr.ErrInvalidNationalIDFormat},
		{"password ok", Password, "7890", nil},
		{"password long", Password, "78901", autherr.ErrInvalidPasswordFormat},
		{"password empty", Password, "", autherr.ErrInvalidPasswordFormat},
		{"phone ok", Phone, "09123456789", nil},
		{"phone 10 digits", Phone, "0912345678", autherr.ErrInvalidPhoneFormat},
		{"phone wrong prefix", Phone, "19123456789", autherr.ErrInvalidPhoneFormat},
		{"phone persian digits", Phone, "۰۹۱۲۳۴۵۶۷۸۹", autherr.ErrInvalidPhoneFormat},
		{"code ok", Code, "000000", nil},
		{"code short", Code, "12345", autherr.ErrInvalidCodeFormat},
		{"code spaced", Code, "12 345", autherr.ErrInvalidCodeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.value)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login("1234567890", "7890"))
	assert.ErrorIs(t, Login("12345", "7890"), autherr.ErrInvalidNationalIDFormat)
	assert.ErrorIs(t, Login("1234567890", "abcd"), autherr.ErrInvalidPasswordFormat)
}

func validProfile() user.Profile {
	return user.Profile{
		NationalID: "1234567890",
		FirstName:  "سارا",
		LastName:   "احمدی",
		Role:       "teacher",
		SchoolID:   "school-1",
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *user.Profile)
		wantErr   error
		wantField string
	}{
		{"valid", func(p *user.Profile) {}, nil, ""},
		{"valid with email", func(p *user.Profile) { p.Email = "sara@example.com" }, nil, ""},
		{"bad national id", func(p *user.Profile) { p.NationalID = "123" }, autherr.ErrInvalidNationalIDFormat, ""},
		{"bad national id wins", func(p *user.Profile) { p.NationalID = "x"; p.FirstName = "" }, autherr.ErrInvalidNationalIDFormat, ""},
		{"blank first name", func(p *user.Profile) { p.FirstName = "   " }, autherr.ErrInvalidProfile, "firstName"},
		{"empty last name", func(p *user.Profile) { p.LastName = "" }, autherr.ErrInvalidProfile, "lastName"},
		{"bad email", func(p *user.Profile) { p.Email = "not-an-email" }, autherr.ErrInvalidProfile, "email"},
		{"unknown role", func(p *user.Profile) { p.Role = "admin" }, autherr.ErrInvalidProfile, "role"},
		{"hyphenated role", func(p *user.Profile) { p.Role = "vice-principal" }, autherr.ErrInvalidProfile, "role"},
		{"missing school", func(p *user.Profile) { p.SchoolID = "" }, autherr.ErrInvalidProfile, "schoolId"},
		{"bad bound phone", func(p *user.Profile) { p.Phone = "123" }, autherr.ErrInvalidProfile, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := Profile(p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantField != "" {
				var e *autherr.Error
				require.True(t, errors.As(err, &e))
				assert.Equal(t, tt.wantField, e.Field)
				assert.NotEmpty(t, e.Message)
			}
		})
	}
}
