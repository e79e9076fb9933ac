package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	Conflict            = "conflict"

	InvalidDataCode         = 402
	InternalServerErrorCode = 500
	NotFoundErrorCode       = 404
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

func (a *AppError) Unwrap() error {
	if a == nil {
		return nil
	}
	return a.Err
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

var (
	ErrDataNotFound         = errors.New("data not found")
	ErrMachineNotFound      = errors.New("machine not found")
	ErrStatusNotFound       = errors.New("open machine status not found")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrInvalidView          = errors.New("invalid view")
	ErrInvalidState         = errors.New("invalid machine state")
	ErrMonitorNotRunning    = errors.New("monitor is not running")
	ErrAdapterNotConfigured = errors.New("fanuc adapter url is not configured")
	ErrAdapterUnavailable   = errors.New("fanuc adapter is unavailable")
	ErrInternal             = errors.New("internal error")
)

// HTTPStatus сопоставляет доменную ошибку с HTTP статусом
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &appErr):
		return appErr.Code
	case errors.Is(err, ErrMachineNotFound), errors.Is(err, ErrStatusNotFound), errors.Is(err, ErrDataNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrInvalidView), errors.Is(err, ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, ErrMonitorNotRunning):
		return http.StatusConflict
	case errors.Is(err, ErrAdapterNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrAdapterUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
