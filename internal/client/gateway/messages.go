package gateway

import (
	"errors"

	"github.com/iudanet/webcards/pkg/api"
)

// ErrConnection covers transport faults and malformed responses. The
// production frontend is Spanish-facing, so user messages stay Spanish.
var ErrConnection = errors.New("connection error")

// MsgConnection is the user-facing message for ErrConnection outcomes
const MsgConnection = "Error de red. Verifica tu conexión."

// Local precondition failure codes, reported without any network call
const (
	CodeMissingInitData    = "missing launch data"
	CodeMissingAccessToken = "missing access token"
)

// DeniedError represents a definitive authentication rejection: either a
// failed local precondition or a backend refusal. Code is the raw reason,
// Message the fixed user-facing text mapped from it.
type DeniedError struct {
	Code    string
	Message string
}

func (e *DeniedError) Error() string {
	return "authentication denied: " + e.Code
}

// userMessages maps the fixed backend reason vocabulary to user-facing text
var userMessages = map[string]string{
	api.ReasonTokenExpired:   "Token expirado. Por favor, solicita uno nuevo desde el bot.",
	api.ReasonNotAuthorized:  "No tienes acceso a esta tarjeta. Contacta al administrador.",
	api.ReasonCardInactive:   "Tarjeta no disponible. Contacta al administrador.",
	api.ReasonCardAtCapacity: "Esta tarjeta alcanzó el máximo de usuarios permitidos.",
	CodeMissingInitData:      "Token de acceso inválido. Por favor, solicita uno nuevo desde el bot.",
	CodeMissingAccessToken:   "Token de acceso inválido. Por favor, solicita uno nuevo desde el bot.",
}

// UserMessage returns the user-facing text for a rejection reason.
// Unknown reasons are reported verbatim behind a generic prefix, never
// swallowed.
func UserMessage(reason string) string {
	if msg, ok := userMessages[reason]; ok {
		return msg
	}
	return "Error de autenticación: " + reason
}

// denied builds a DeniedError with the mapped user message
func denied(reason string) *DeniedError {
	return &DeniedError{
		Code:    reason,
		Message: UserMessage(reason),
	}
}
