package commons

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Response[T any] struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Status:  StatusSuccess,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Status:  StatusError,
		Message: message,
		Errors:  errors,
	}
}

// MessageResponse is a success envelope without a payload, used by
// operations that have nothing to return.
func MessageResponse(message string) Response[struct{}] {
	return Response[struct{}]{
		Status:  StatusSuccess,
		Message: message,
	}
}
