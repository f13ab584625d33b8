// Package form owns the editable draft of a service request and drives
// the publish side of the exchange protocol.
package form

import (
	"context"
	"log"

	"scout-exchange/internal/domain"
	"scout-exchange/internal/gateway"
)

// Controller holds one viewer's draft and enforces the role's field-level
// write permissions on every mutation. It is not safe for concurrent use;
// the session layer serializes access.
type Controller struct {
	gw       gateway.Gateway
	role     domain.Role
	draft    domain.ServiceRequest
	editable map[domain.Field]bool
}

func NewController(role domain.Role, gw gateway.Gateway) *Controller {
	c := &Controller{gw: gw}
	c.SetRole(role)
	return c
}

func (c *Controller) Role() domain.Role {
	return c.role
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() domain.ServiceRequest {
	return c.draft.Clone()
}

// EditableFields returns a copy of the active editability policy.
func (c *Controller) EditableFields() map[domain.Field]bool {
	out := make(map[domain.Field]bool, len(c.editable))
	for f, ok := range c.editable {
		out[f] = ok
	}
	return out
}

// SetRole reinitializes the draft and the editability policy. Any
// previously loaded record is discarded, not merged.
func (c *Controller) SetRole(role domain.Role) {
	c.role = role
	c.draft = domain.InitialState(role)
	c.editable = domain.EditableFields(role)
}

// LoadRecord overwrites the draft wholesale with the given record.
// Loading is a hydration action, not an edit, so the editability policy
// is not consulted.
func (c *Controller) LoadRecord(record domain.ServiceRequest) {
	c.draft = record.Clone()
}

// UpdateField applies a scalar mutation if the role may edit the field;
// otherwise it is a silent no-op, matching read-only-field behavior.
func (c *Controller) UpdateField(field domain.Field, value string) {
	if !c.editable[field] {
		return
	}
	c.draft.SetField(field, value)
}

// SetDeliverables replaces the deliverables set, subject to the same
// editability gate as any other field.
func (c *Controller) SetDeliverables(values []domain.Deliverable) {
	if !c.editable[domain.FieldRequiredDeliverables] {
		return
	}
	c.draft.SetDeliverables(values)
}

// ToggleDeliverable adds or removes one deliverable with checkbox
// semantics.
func (c *Controller) ToggleDeliverable(value domain.Deliverable, selected bool) {
	if !c.editable[domain.FieldRequiredDeliverables] {
		return
	}
	c.draft.ToggleDeliverable(value, selected)
}

// RequiredFieldsSatisfied exposes the clean-submission precondition so
// the caller can gate the action; Submit itself does not block on it.
func (c *Controller) RequiredFieldsSatisfied() bool {
	return domain.RequiredFieldsSatisfied(c.draft)
}

// Submit packages the draft and publishes it: internal authors a
// new_request on service-requests, any other role completes on
// service-completions. The draft keeps its edits on success; reset is a
// separate explicit action.
func (c *Controller) Submit(ctx context.Context) (domain.Envelope, error) {
	if c.draft.ID == "" {
		c.draft.ID = domain.NewRequestID()
	}
	submitted := c.draft.Clone()

	var env domain.Envelope
	if c.role == domain.RoleInternal {
		env = domain.NewRequestEnvelope(submitted, domain.RoleInternal)
	} else {
		env = domain.CompletionEnvelope(submitted, domain.RoleExternal)
	}

	if err := c.gw.Publish(ctx, env.Channel(), env.Type, env); err != nil {
		log.Printf("form: publish %s for request %s failed: %v", env.Type, submitted.ID, err)
		return domain.Envelope{}, err
	}
	return env, nil
}

// Reset restores the draft to the role's initial state, discarding all
// edits and any loaded record.
func (c *Controller) Reset() {
	c.draft = domain.InitialState(c.role)
}
