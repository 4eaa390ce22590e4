package http

import (
	"strconv"

	"github.com/JosueCumpa/crud-personas/internal/application"
	"github.com/JosueCumpa/crud-personas/internal/domain"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage = 0
	defaultSize = 10
)

type PersonaHandler struct {
	service   *application.PersonaService
	validator *RequestValidator
}

// PageResponse representa una página de personas en la respuesta JSON
type PageResponse struct {
	Content          []domain.Persona `json:"content"`
	TotalElements    int64            `json:"totalElements"`
	TotalPages       int              `json:"totalPages"`
	Number           int              `json:"number"`
	Size             int              `json:"size"`
	NumberOfElements int              `json:"numberOfElements"`
	First            bool             `json:"first"`
	Last             bool             `json:"last"`
	Empty            bool             `json:"empty"`
}

// NewPersonaHandler crea una nueva instancia del handler de personas
func NewPersonaHandler(service *application.PersonaService, validator *RequestValidator) *PersonaHandler {
	return &PersonaHandler{
		service:   service,
		validator: validator,
	}
}

func toPageResponse(page domain.Page) PageResponse {
	return PageResponse{
		Content:          page.Content,
		TotalElements:    page.TotalElements,
		TotalPages:       page.TotalPages(),
		Number:           page.Number,
		Size:             page.Size,
		NumberOfElements: page.NumberOfElements(),
		First:            page.First(),
		Last:             page.Last(),
		Empty:            page.Empty(),
	}
}

// GetAll lista todas las personas
func (h *PersonaHandler) GetAll(c *fiber.Ctx) error {
	personas, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(personas)
}

// GetPage lista una página de personas (?page=0&size=10)
func (h *PersonaHandler) GetPage(c *fiber.Ctx) error {
	req, err := parsePageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListPage(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(toPageResponse(page))
}

// Create registra una nueva persona
func (h *PersonaHandler) Create(c *fiber.Ctx) error {
	req, err := h.parsePersonaRequest(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.UserContext(), domain.NewPersona(req.Nombre, req.Email))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update reemplaza nombre y email de una persona existente
func (h *PersonaHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := h.parsePersonaRequest(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.UserContext(), id, domain.NewPersona(req.Nombre, req.Email))
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// Delete elimina una persona existente
func (h *PersonaHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: msgDeleted})
}

func (h *PersonaHandler) parsePersonaRequest(c *fiber.Ctx) (PersonaRequest, error) {
	var req PersonaRequest
	if err := c.BodyParser(&req); err != nil {
		return PersonaRequest{}, fiber.NewError(fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := h.validator.Validate(req); err != nil {
		return PersonaRequest{}, err
	}
	return req, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, msgInvalidID)
	}
	return id, nil
}

func parsePageRequest(c *fiber.Ctx) (domain.PageRequest, error) {
	page, err := queryInt(c, "page", defaultPage)
	if err != nil || page < 0 {
		return domain.PageRequest{}, fiber.NewError(fiber.StatusBadRequest, msgInvalidPage)
	}

	size, err := queryInt(c, "size", defaultSize)
	if err != nil || size < 1 {
		return domain.PageRequest{}, fiber.NewError(fiber.StatusBadRequest, msgInvalidPage)
	}

	return domain.PageRequest{Page: page, Size: size}, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
