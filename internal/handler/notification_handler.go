package handler

import (
	"github.com/gofiber/fiber/v2"

	"scout-exchange/internal/middleware"
	"scout-exchange/internal/service/session"
)

type NotificationHandler struct {
	sessions *session.Manager
}

func NewNotificationHandler(sessions *session.Manager) *NotificationHandler {
	return &NotificationHandler{sessions: sessions}
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	view := s.Snapshot()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"state":        view.NotificationState,
		"notification": view.Notification,
	})
}

func (h *NotificationHandler) ViewDetails(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	notification := s.ViewDetails()
	if notification == nil {
		return middleware.NotFound("No notification to view")
	}
	return c.Status(fiber.StatusOK).JSON(notification)
}

func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	s.DismissNotification()
	return c.Status(fiber.StatusNoContent).SendString("")
}

// Open hands the current notification into the read-only viewer form and
// returns the opened record.
func (h *NotificationHandler) Open(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if err != nil {
		return err
	}

	record := s.OpenNotification()
	if record == nil {
		return middleware.NotFound("No notification to open")
	}
	return c.Status(fiber.StatusOK).JSON(record)
}

func (h *NotificationHandler) lookup(c *fiber.Ctx) (*session.Session, error) {
	s, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return nil, middleware.NotFound("Session not found")
	}
	return s, nil
}
