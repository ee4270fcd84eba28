// Package validate holds the field rules every step of the authentication
// flow applies before talking to a backend.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/model/user"

	"github.com/go-playground/validator/v10"
)

var (
	v *validator.Validate

	// custom validation tags
	digitsTag   = "digits"
	notBlankTag = "notblank"
	roleTag     = "role"
)

var profileMessages = map[string]string{
	"firstName": "نام را وارد کنید",
	"lastName":  "نام خانوادگی را وارد کنید",
	"email":     "ایمیل وارد شده معتبر نیست",
	"role":      "نقش انتخاب شده معتبر نیست",
	"schoolId":  "مدرسه را انتخاب کنید",
	"phone":     "شماره موبایل معتبر نیست",
}

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	_ = v.RegisterValidation(digitsTag, digitsValidation)
	_ = v.RegisterValidation(notBlankTag, notBlankValidation)
	_ = v.RegisterValidation(roleTag, roleValidation)
}

// ASCII digits only; "numeric" would also accept signs and decimals.
func digitsValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func roleValidation(fl validator.FieldLevel) bool {
	_, ok := user.ParseRole(fl.Field().String())
	return ok
}

func field(value, tag string, err *autherr.Error) error {
	if v.Var(value, tag) != nil {
		return err
	}
	return nil
}

func NationalID(s string) error {
	return field(s, "required,len=10,digits", autherr.ErrInvalidNationalIDFormat)
}

func Password(s string) error {
	return field(s, "required,len=4,digits", autherr.ErrInvalidPasswordFormat)
}

func Phone(s string) error {
	return field(s, "required,len=11,digits,startswith=09", autherr.ErrInvalidPhoneFormat)
}

func Code(s string) error {
	return field(s, "required,len=6,digits", autherr.ErrInvalidCodeFormat)
}

// Login checks the login step fields in form order.
func Login(nationalID, password string) error {
	if err := NationalID(nationalID); err != nil {
		return err
	}
	return Password(password)
}

// Profile reports the first failing field. A bad national ID keeps its own
// kind; every other field is an InvalidProfile carrying the field name.
func Profile(p user.Profile) error {
	err := v.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return autherr.ErrInvalidProfile
	}

	for _, fe := range verrs {
		if fe.Field() == "nationalId" {
			return autherr.ErrInvalidNationalIDFormat
		}
	}

	name := verrs[0].Field()
	msg, ok := profileMessages[name]
	if !ok {
		msg = autherr.ErrInvalidProfile.Message
	}
	return autherr.InvalidProfile(name, msg)
}
