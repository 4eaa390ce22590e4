package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// PersonaRequest es el payload para crear o actualizar una persona
type PersonaRequest struct {
	Nombre string `json:"nombre" validate:"notblank"`
	Email  string `json:"email" validate:"notblank,correo"`
}

// ValidationError describe el primer campo inválido de un payload
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// RequestValidator valida payloads usando las etiquetas validate
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator crea un validador que reporta los campos con su nombre JSON
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("registering notblank validation: %v", err))
	}
	if err := v.RegisterValidation("correo", emailAddress(v)); err != nil {
		panic(fmt.Sprintf("registering correo validation: %v", err))
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate devuelve un *ValidationError con el primer campo que falla, o nil
func (v *RequestValidator) Validate(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "payload", Message: "Datos invalidos"}
	}

	first := fieldErrs[0]
	return &ValidationError{Field: first.Field(), Message: validationMessage(first)}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("el %s es obligatorio", fe.Field())
	case "email", "correo":
		return "email invalido"
	default:
		return "valor invalido"
	}
}

// emailAddress acepta lo que acepta la etiqueta email y además dominios de
// una sola etiqueta como juan@localhost
func emailAddress(v *validator.Validate) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if v.Var(value, "email") == nil {
			return true
		}

		at := strings.LastIndex(value, "@")
		if at <= 0 || at == len(value)-1 {
			return false
		}
		local, host := value[:at], value[at+1:]
		return v.Var(local+"@example.com", "email") == nil && v.Var(host, "hostname_rfc1123") == nil
	}
}
