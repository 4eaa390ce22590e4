package domain

import (
	"errors"
	"fmt"
)

// Señales del repositorio que el servicio traduce a errores de dominio
var (
	ErrUniqueViolation = errors.New("violación de restricción única")
	ErrRecordNotFound  = errors.New("registro no encontrado")
)

// ErrorKind clasifica los errores de negocio de personas
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindDuplicateEmail
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Error es un error de negocio con su tipo y el dato que lo provocó
type Error struct {
	Kind  ErrorKind
	Email string
	ID    int64
}

// NewDuplicateEmailError crea el error para un email ya registrado
func NewDuplicateEmailError(email string) *Error {
	return &Error{Kind: KindDuplicateEmail, Email: email}
}

// NewNotFoundError crea el error para una persona inexistente
func NewNotFoundError(id int64) *Error {
	return &Error{Kind: KindNotFound, ID: id}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDuplicateEmail:
		return "El email ya esta registrado: " + e.Email
	case KindNotFound:
		return fmt.Sprintf("Persona no encontrada con id %d", e.ID)
	default:
		return "error inesperado"
	}
}

// KindOf obtiene el tipo de error de negocio, o KindUnexpected si no lo es
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnexpected
}
