package dto

// ===== Common responses =====

type ErrorResponse struct {
	Error string `json:"error" example:"Arena not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Account created. Check your email to verify."`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
