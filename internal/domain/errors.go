package domain

import "errors"

// Errores de dominio (sin dependencias externas). La pasarela REST traduce
// los fallos de transporte/HTTP a uno de estos; las capas superiores los
// comparan con errors.Is.
var (
	ErrNetwork          = errors.New("sin respuesta del servidor")
	ErrServer           = errors.New("error del servidor")
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrConflict         = errors.New("conflicto de concurrencia optimista")
	ErrValidation       = errors.New("datos rechazados por el servidor")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrPermissionDenied = errors.New("permiso de captura denegado")
	ErrInvalidInput     = errors.New("entrada inválida")
)
