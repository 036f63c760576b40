package utils

import (
	"errors"
	"net/http"
)

// ErrorKind mengklasifikasikan error domain supaya handler bisa memetakan
// ke status HTTP tanpa membongkar pesan.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidState
)

// AppError adalah error domain ber-tipe yang dikembalikan service.
// Service tidak pernah menyentuh status HTTP; pemetaan terjadi di handler.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error // penyebab asli, opsional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError: input tidak valid / prasyarat bisnis tidak terpenuhi (400).
func NewValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

// NewForbiddenError: terautentikasi tapi tidak berhak (403).
func NewForbiddenError(msg string) error {
	return &AppError{Kind: KindForbidden, Message: msg}
}

// NewNotFoundError: resource tidak ditemukan (404).
func NewNotFoundError(msg string) error {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// NewConflictError: pelanggaran keunikan (409).
func NewConflictError(msg string) error {
	return &AppError{Kind: KindConflict, Message: msg}
}

// NewInvalidStateError: transisi tidak diizinkan dari status sekarang (400).
func NewInvalidStateError(msg string) error {
	return &AppError{Kind: KindInvalidState, Message: msg}
}

// WrapError membungkus penyebab teknis dengan klasifikasi domain.
func WrapError(kind ErrorKind, msg string, err error) error {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

// KindOf mengembalikan klasifikasi error, atau 0 jika bukan AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// HTTPStatus memetakan error domain ke status HTTP.
// Error yang tidak terklasifikasi dianggap kegagalan server (500).
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// UserMessage mengambil pesan yang aman ditampilkan ke pemanggil.
// Detail internal (stack/pesan driver) tidak pernah bocor untuk error 500.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Terjadi kesalahan pada server"
}
