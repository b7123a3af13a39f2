package handler

import "github.com/contesthub/backend/internal/core/domain"

// Shared response envelopes owned by the transport layer. These are
// intentionally separate from ports/domain types so the JSON contract is
// not coupled to internal service changes.

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type listContestsResponse struct {
	Data       []*domain.Contest  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
