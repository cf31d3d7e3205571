package dto

// ErrorResponse cuerpo de error de la API: los callers bifurcan por Code.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
