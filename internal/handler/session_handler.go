package handler

import (
	"github.com/gofiber/fiber/v2"

	"scout-exchange/internal/domain"
	"scout-exchange/internal/middleware"
	"scout-exchange/internal/service/session"
)

type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type createSessionInput struct {
	Role string `json:"role"`
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var input createSessionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	s, err := h.sessions.Create(domain.ParseRole(input.Role))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(s.Snapshot())
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s.Snapshot())
}

type setRoleInput struct {
	Role string `json:"role"`
}

func (h *SessionHandler) SetRole(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	var input setRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := s.SetRole(domain.ParseRole(input.Role)); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s.Snapshot())
}

type updateFieldInput struct {
	Value string `json:"value"`
}

// UpdateField applies a single scalar edit. A mutation the role may not
// make is a silent no-op, so the response is simply the (possibly
// unchanged) session state.
func (h *SessionHandler) UpdateField(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	name := c.Params("name")
	if !domain.KnownField(name) {
		return middleware.BadRequest("Unknown field name")
	}

	var input updateFieldInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	view := s.UpdateField(domain.Field(name), input.Value)
	return c.Status(fiber.StatusOK).JSON(view)
}

type toggleDeliverableInput struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

func (h *SessionHandler) ToggleDeliverable(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	var input toggleDeliverableInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Value == "" {
		return middleware.BadRequest("Deliverable value is required")
	}

	view := s.ToggleDeliverable(domain.Deliverable(input.Value), input.Selected)
	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *SessionHandler) Load(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	var record domain.ServiceRequest
	if err := c.BodyParser(&record); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	view := s.LoadRecord(record)
	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	env, err := s.Submit(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"published": env,
	})
}

func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s.Reset())
}

func (h *SessionHandler) Viewer(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	viewer := s.Viewer()
	if viewer == nil {
		return middleware.NotFound("No record has been opened in the form")
	}
	return c.Status(fiber.StatusOK).JSON(viewer)
}

func (h *SessionHandler) Destroy(c *fiber.Ctx) error {
	h.sessions.Destroy(c.Params("id"))
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *SessionHandler) lookup(c *fiber.Ctx) (*session.Session, error) {
	s, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return nil, middleware.NotFound("Session not found")
	}
	return s, nil
}
