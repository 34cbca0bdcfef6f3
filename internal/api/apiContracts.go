package api

import "time"

type SummaryResponse struct {
	Filename     string `json:"filename" example:"lease_2024.pdf"`
	FullSummary  string `json:"full_summary" example:"The tenant leases the flat for twelve months at a fixed rent."`
	ShortSummary string `json:"short_summary" example:"A twelve month residential lease."`
}

type SearchResponse struct {
	Filename string `json:"filename" example:"lease_2024.pdf"`
	Result   string `json:"result" example:"Rent is due on the first day of each month."`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"no documents supplied"`
	TraceId string `json:"trace_id,omitempty" example:"5f0c5c1e-4c1b-4c1b-9c1b-5f0c5c1e4c1b"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Workers int64  `json:"workers" example:"1"`
}

type LoginResponse struct {
	Token     string    `json:"token" example:"9b2f4c1e-1f0c-4c1b-9c1b-5f0c5c1e4c1b"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignupResponse struct {
	Username string `json:"username" example:"alice"`
}

// requests---------------------

type CredentialsRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"correct horse battery staple"`
}
