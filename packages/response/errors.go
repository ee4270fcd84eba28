package response

import "net/http"

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 未登录或凭证无效
	Unauthorized ResponseCode = 3
	// 资源不存在
	NotFound ResponseCode = 4
	// 资源冲突（唯一性）
	Conflict ResponseCode = 5
	// 请求过于频繁
	TooManyRequests ResponseCode = 6
	// 下游依赖不可用
	Unavailable ResponseCode = 7
)

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Kind string
	Err  error
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

// WithErrorKind sets the machine-readable error name returned to clients.
func WithErrorKind(kind string) ErrorOption {
	return func(be *BusinessError) {
		be.Kind = kind
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the business code onto a transport status.
func (e *BusinessError) HTTPStatus() int {
	switch e.Code {
	case ParseError, InvalidParameter:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case TooManyRequests:
		return http.StatusTooManyRequests
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
