package response

type ResponseCode int

// 统一业务代码
const (
	Success = 100
)

type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Error   string       `json:"error,omitempty"`
	Data    any          `json:"data"`
}

func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
		Data:    nil,
	}
}

// FromBusinessError builds the error envelope, including the error kind.
func FromBusinessError(err *BusinessError) Response {
	resp := ErrorResponse(err.Code, err.Msg)
	resp.Error = err.Kind
	return resp
}
