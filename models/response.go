package models

// Response is the JSON envelope shared by every endpoint: success flag,
// optional message, payload on success, error detail on failure.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(data any) Response {
	return Response{Success: true, Data: data}
}

func SuccessMessage(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(message, detail string) Response {
	return Response{Success: false, Message: message, Error: detail}
}
