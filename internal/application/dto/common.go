package dto

// ErrorResponse cuerpo de error HTTP. Es el único canal de error hacia el navegador.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple de una operación.
type MessageResponse struct {
	Message string `json:"message"`
}
