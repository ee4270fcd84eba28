// Package autherr is the error taxonomy of the authentication core. Each kind
// has a sentinel that services wrap with %w, a Persian message shown to the
// user and a response code that decides the HTTP status.
package autherr

import (
	"errors"

	"madrese/auth-service/packages/response"
)

type Kind string

const (
	KindInvalidCredentials      Kind = "InvalidCredentials"
	KindInvalidNationalIDFormat Kind = "InvalidNationalIdFormat"
	KindInvalidPasswordFormat   Kind = "InvalidPasswordFormat"
	KindInvalidPhoneFormat      Kind = "InvalidPhoneFormat"
	KindInvalidCodeFormat       Kind = "InvalidCodeFormat"
	KindInvalidProfile          Kind = "InvalidProfile"
	KindNoChallenge             Kind = "NoChallenge"
	KindExpired                 Kind = "Expired"
	KindInvalidCode             Kind = "InvalidCode"
	KindTooManyAttempts         Kind = "TooManyAttempts"
	KindDuplicateIdentity       Kind = "DuplicateIdentity"
	KindTransportFailure        Kind = "TransportFailure"
	KindNotAuthenticated        Kind = "NotAuthenticated"
	KindRegistrationExpired     Kind = "RegistrationExpired"
)

// Error is a taxonomy sentinel. Two errors match under errors.Is when their
// kinds are equal, so a field-specific InvalidProfile still matches
// ErrInvalidProfile.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	code    response.ResponseCode
}

func (e *Error) Error() string {
	if e.Field != "" {
		return string(e.Kind) + "(" + e.Field + ")"
	}
	return string(e.Kind)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Code() response.ResponseCode {
	return e.code
}

var (
	ErrInvalidCredentials      = &Error{Kind: KindInvalidCredentials, Message: "کد ملی یا رمز عبور نادرست است", code: response.Unauthorized}
	ErrInvalidNationalIDFormat = &Error{Kind: KindInvalidNationalIDFormat, Message: "کد ملی باید ۱۰ رقم باشد", code: response.InvalidParameter}
	ErrInvalidPasswordFormat   = &Error{Kind: KindInvalidPasswordFormat, Message: "رمز عبور باید ۴ رقم باشد", code: response.InvalidParameter}
	ErrInvalidPhoneFormat      = &Error{Kind: KindInvalidPhoneFormat, Message: "شماره موبایل باید ۱۱ رقم و با ۰۹ شروع شود", code: response.InvalidParameter}
	ErrInvalidCodeFormat       = &Error{Kind: KindInvalidCodeFormat, Message: "کد تأیید باید ۶ رقم باشد", code: response.InvalidParameter}
	ErrInvalidProfile          = &Error{Kind: KindInvalidProfile, Message: "اطلاعات پروفایل نامعتبر است", code: response.InvalidParameter}
	ErrNoChallenge             = &Error{Kind: KindNoChallenge, Message: "کد تأییدی برای این شماره وجود ندارد، دوباره درخواست دهید", code: response.InvalidParameter}
	ErrExpired                 = &Error{Kind: KindExpired, Message: "کد تأیید منقضی شده است", code: response.InvalidParameter}
	ErrInvalidCode             = &Error{Kind: KindInvalidCode, Message: "کد تأیید نادرست است", code: response.InvalidParameter}
	ErrTooManyAttempts         = &Error{Kind: KindTooManyAttempts, Message: "تعداد تلاش‌ها بیش از حد مجاز است، کد جدید درخواست دهید", code: response.TooManyRequests}
	ErrDuplicateIdentity       = &Error{Kind: KindDuplicateIdentity, Message: "کاربری با این کد ملی یا شماره موبایل قبلاً ثبت شده است", code: response.Conflict}
	ErrTransportFailure        = &Error{Kind: KindTransportFailure, Message: "ارسال پیامک ناموفق بود، دوباره تلاش کنید", code: response.Unavailable}
	ErrNotAuthenticated        = &Error{Kind: KindNotAuthenticated, Message: "ابتدا وارد شوید", code: response.Unauthorized}
	ErrRegistrationExpired     = &Error{Kind: KindRegistrationExpired, Message: "مهلت ثبت‌نام به پایان رسیده است، شماره موبایل را دوباره تأیید کنید", code: response.InvalidParameter}
)

var byKind = map[Kind]*Error{}

func init() {
	for _, e := range []*Error{
		ErrInvalidCredentials,
		ErrInvalidNationalIDFormat,
		ErrInvalidPasswordFormat,
		ErrInvalidPhoneFormat,
		ErrInvalidCodeFormat,
		ErrInvalidProfile,
		ErrNoChallenge,
		ErrExpired,
		ErrInvalidCode,
		ErrTooManyAttempts,
		ErrDuplicateIdentity,
		ErrTransportFailure,
		ErrNotAuthenticated,
		ErrRegistrationExpired,
	} {
		byKind[e.Kind] = e
	}
}

// InvalidProfile reports which profile field failed validation.
func InvalidProfile(field, message string) *Error {
	return &Error{Kind: KindInvalidProfile, Field: field, Message: message, code: response.InvalidParameter}
}

// FromKind maps a kind received over the wire back to its sentinel.
func FromKind(kind string) (*Error, bool) {
	e, ok := byKind[Kind(kind)]
	return e, ok
}

// Business converts err into the envelope error. Errors outside the taxonomy
// become a generic failure carrying err for logging.
func Business(err error) *response.BusinessError {
	var bizErr *response.BusinessError
	if errors.As(err, &bizErr) {
		return bizErr
	}

	var e *Error
	if errors.As(err, &e) {
		return response.NewBusinessError(
			response.WithErrorCode(e.code),
			response.WithErrorMessage(e.Message),
			response.WithErrorKind(string(e.Kind)),
			response.WithError(err),
		)
	}

	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage("خطای داخلی سرور"),
		response.WithError(err),
	)
}
