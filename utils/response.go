package utils

import "time"

// APIResponse adalah format standar JSON yang diterima frontend.
// Contoh sukses : { "success": true,  "message": "Proposal berhasil dibuat", "data": {...}, "timestamp": "..." }
// Contoh gagal  : { "success": false, "message": "Proposal tidak ditemukan", "timestamp": "..." }
type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Pagination menyertai respons list.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination menghitung blok pagination dari total baris.
func NewPagination(page, limit int, total int64) *Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return &Pagination{Page: page, Limit: limit, TotalItems: total, TotalPages: pages}
}

// BuildResponseSuccess dipakai saat request berhasil (HTTP 200/201).
func BuildResponseSuccess(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// BuildResponsePaginated dipakai untuk respons list dengan pagination.
func BuildResponsePaginated(message string, data interface{}, p *Pagination) APIResponse {
	return APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: p,
		Timestamp:  time.Now(),
	}
}

// BuildResponseFailed dipakai saat terjadi error (HTTP 4xx/5xx).
func BuildResponseFailed(message string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}
}
