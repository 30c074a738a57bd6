package services

import "errors"

// Stable error kinds for the loyalty workflow. Controllers match on these
// with errors.Is to pick the HTTP status; the message shown to the user
// lives next to the kind.
var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrCouponNotFound     = errors.New("cupón no encontrado")
	ErrRedemptionNotFound = errors.New("redención no encontrada")
	ErrCouponInactive     = errors.New("el cupón no está activo")
	ErrAlreadyRedeemed    = errors.New("ya has canjeado este cupón anteriormente")
	ErrAlreadyUsed        = errors.New("este cupón ya ha sido utilizado")
	ErrInsufficientPoints = errors.New("no tienes suficientes puntos para canjear este cupón")
	ErrCouponInUse        = errors.New("el cupón tiene redenciones asociadas y no puede eliminarse")
	ErrInvalidArgument    = errors.New("datos inválidos")
	ErrEmailTaken         = errors.New("el correo ya está en uso")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
