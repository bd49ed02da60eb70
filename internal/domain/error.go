package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code      int    `json:"code" example:"400"`
	Category  string `json:"category" example:"VALIDATION_ERROR"`
	Message   string `json:"message" example:"name não pode ser vazio"`
	RequestID string `json:"requestId,omitempty" example:"5f0c8e52-3c1e-4c55-9d57-0f6c7b1c2a11"` // mesmo valor do header X-Request-ID
}
