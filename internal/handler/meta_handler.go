package handler

import (
	"github.com/gofiber/fiber/v2"

	"scout-exchange/internal/domain"
)

// MetaHandler serves the static form metadata the excluded UI layer
// renders from: enum options with labels, the per-role edit policies,
// required fields, and channel names.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) Get(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"serviceTypes":        domain.ServiceTypeOptions(),
		"priorities":          domain.PriorityOptions(),
		"availabilityWindows": domain.AvailabilityWindowOptions(),
		"deliverables":        domain.DeliverableOptions(),
		"states":              domain.StateOptions(),
		"requiredFields":      domain.RequiredFields(),
		"editableFields": fiber.Map{
			string(domain.RoleInternal): domain.EditableFields(domain.RoleInternal),
			string(domain.RoleExternal): domain.EditableFields(domain.RoleExternal),
		},
		"channels": []domain.Channel{
			domain.ChannelServiceRequests,
			domain.ChannelServiceCompletions,
			domain.ChannelServiceUpdates,
		},
		"events": []domain.EventKind{
			domain.EventNewRequest,
			domain.EventCompletedRequest,
		},
	})
}
