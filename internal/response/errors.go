package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Session ───────────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionRequired    ErrCode = "SESSION_REQUIRED"
	ErrSessionExpired     ErrCode = "SESSION_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Upstream ──────────────────────────────────────────────────────
	ErrUpstreamUnavailable ErrCode = "UPSTREAM_UNAVAILABLE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// Messages are Spanish, matching the product's audience.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Credenciales inválidas."
	case ErrSessionRequired:
		return "Debe iniciar sesión para acceder a este recurso."
	case ErrSessionExpired:
		return "Sesión expirada. Inicie sesión nuevamente."
	case ErrValidation:
		return "Validación fallida. Revise los datos ingresados."
	case ErrInvalidID:
		return "Formato de ID no válido."
	case ErrUpstreamUnavailable:
		return "El servicio de exámenes no está disponible en este momento."
	case ErrNotFound:
		return "Recurso no encontrado."
	case ErrInternal:
		return "Error interno del servidor."
	default:
		return "Error inesperado."
	}
}
