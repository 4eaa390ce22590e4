package http

import (
	"errors"

	"github.com/JosueCumpa/crud-personas/internal/domain"
	"github.com/JosueCumpa/crud-personas/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	msgUnexpected   = "Error inesperado, intente nuevamente"
	msgInvalidBody  = "Datos invalidos"
	msgInvalidID    = "id invalido"
	msgInvalidPage  = "parametros de paginacion invalidos"
	msgNotFound     = "Recurso no encontrado"
	msgRateLimited  = "Demasiadas solicitudes, intente mas tarde"
	msgDeleted      = "Persona eliminada"
	kindValidation  = "validation"
	kindHTTP        = "http"
	headerRequestID = "X-Request-ID"
)

// MessageResponse es el cuerpo de las respuestas de error y de confirmación
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorHandler traduce los errores de los handlers a status y cuerpo {message}
func NewErrorHandler(log logrus.FieldLogger, m *metrics.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message, kind := resolveError(err)

		if status >= fiber.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.GetRespHeader(headerRequestID),
			}).Error("error inesperado")
		}
		m.RecordError(c.UserContext(), kind)

		return c.Status(status).JSON(MessageResponse{Message: message})
	}
}

func resolveError(err error) (int, string, string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error(), kindValidation
	}

	switch kind := domain.KindOf(err); kind {
	case domain.KindDuplicateEmail:
		return fiber.StatusConflict, err.Error(), kind.String()
	case domain.KindNotFound:
		return fiber.StatusNotFound, err.Error(), kind.String()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch {
		case fiberErr.Code == fiber.StatusNotFound:
			return fiberErr.Code, msgNotFound, kindHTTP
		case fiberErr.Code >= fiber.StatusInternalServerError:
			return fiber.StatusInternalServerError, msgUnexpected, domain.KindUnexpected.String()
		default:
			return fiberErr.Code, fiberErr.Message, kindHTTP
		}
	}

	return fiber.StatusInternalServerError, msgUnexpected, domain.KindUnexpected.String()
}
