package models

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResponse struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	ExpiresAt string `json:"expires_at"`
}

type ChatRequest struct {
	Message string `json:"message" form:"message" validate:"required"`
}

type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type ChatResponse struct {
	Response string  `json:"response"`
	Message  Message `json:"message"`
}

type HistoryResponse struct {
	Messages []Message `json:"messages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Store    string `json:"store"`
	Model    string `json:"model"`
	Sessions int    `json:"sessions"`
}
