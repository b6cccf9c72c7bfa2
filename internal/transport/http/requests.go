package http

import "github.com/YusovID/skillswap-service/internal/domain"

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type requestStatusRequest struct {
	Status domain.RequestStatus `json:"status" validate:"required"`
}

type reportStatusRequest struct {
	Status domain.ReportStatus `json:"status" validate:"required"`
}

type requestStatusResponse struct {
	Request domain.SwapRequest `json:"request"`
	Swap    *domain.ActiveSwap `json:"swap,omitempty"`
}

type errorCode string

const (
	codeValidation        errorCode = "VALIDATION_FAILED"
	codeInvalidRequest    errorCode = "INVALID_REQUEST"
	codeNotFound          errorCode = "NOT_FOUND"
	codeDuplicateEmail    errorCode = "DUPLICATE_EMAIL"
	codeInvalidTransition errorCode = "INVALID_TRANSITION"
	codeUnauthorized      errorCode = "UNAUTHORIZED"
	codeInternal          errorCode = "INTERNAL"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}
