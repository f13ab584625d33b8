package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleInternal, ParseRole("internal"))
	assert.Equal(t, RoleExternal, ParseRole("external"))
	assert.Equal(t, RoleInternal, ParseRole("  Internal "))
	assert.Equal(t, RoleUnknown, ParseRole("admin"))
	assert.Equal(t, RoleUnknown, ParseRole(""))
}

func TestRoleComplement(t *testing.T) {
	assert.Equal(t, RoleExternal, RoleInternal.Complement())
	assert.Equal(t, RoleInternal, RoleExternal.Complement())
}

func TestInitialState(t *testing.T) {
	t.Run("internal defaults", func(t *testing.T) {
		req := InitialState(RoleInternal)

		assert.Equal(t, ServiceSiteInspection, req.ServiceType)
		assert.Equal(t, PriorityStandard, req.Priority)
		assert.Equal(t, WindowBusinessHours, req.AvailabilityWindow)
		assert.Empty(t, req.ClientAccount)
		assert.Empty(t, req.RequestTitle)
		assert.NotNil(t, req.RequiredDeliverables)
		assert.Empty(t, req.RequiredDeliverables)
	})

	t.Run("external pre-fills client account", func(t *testing.T) {
		req := InitialState(RoleExternal)
		assert.Equal(t, "External Client Account", req.ClientAccount)
	})
}

func TestEditableFieldsIsTotalAndDisjoint(t *testing.T) {
	internal := EditableFields(RoleInternal)
	external := EditableFields(RoleExternal)

	for _, f := range Fields() {
		internalOK, ok := internal[f]
		require.True(t, ok, "internal policy missing field %s", f)
		externalOK, ok := external[f]
		require.True(t, ok, "external policy missing field %s", f)

		// Every field has exactly one editable owner role.
		assert.NotEqual(t, internalOK, externalOK, "field %s must be owned by exactly one role", f)
	}

	assert.Len(t, internal, len(Fields()))
	assert.Len(t, external, len(Fields()))
}

func TestEditableFieldsOwnership(t *testing.T) {
	internal := EditableFields(RoleInternal)
	external := EditableFields(RoleExternal)

	assert.True(t, internal[FieldRequestTitle])
	assert.True(t, internal[FieldPreferredDate])
	assert.False(t, internal[FieldRequiredDeliverables])
	assert.False(t, internal[FieldNotes])

	assert.False(t, external[FieldRequestTitle])
	assert.True(t, external[FieldRequiredDeliverables])
	assert.True(t, external[FieldNotes])
}

func TestEditableFieldsUnknownRoleGetsExternalPolicy(t *testing.T) {
	assert.Equal(t, EditableFields(RoleExternal), EditableFields(RoleUnknown))
	assert.Equal(t, EditableFields(RoleExternal), EditableFields(ParseRole("superuser")))
}

func TestRequiredFieldsSatisfied(t *testing.T) {
	req := InitialState(RoleInternal)
	assert.False(t, RequiredFieldsSatisfied(req))

	req.RequestTitle = "Storm damage inspection"
	req.ClientAccount = "Acme Co"
	req.AddressLine1 = "123 Main St"
	req.City = "Tulsa"
	req.State = "OK"
	req.PostalCode = "74101"
	req.ContactName = "Jane Doe"
	req.ContactPhone = "555-1234"
	assert.False(t, RequiredFieldsSatisfied(req), "preferredDate still empty")

	req.PreferredDate = "2024-06-01"
	assert.True(t, RequiredFieldsSatisfied(req))

	// Fulfillment fields are never required.
	assert.Empty(t, req.Notes)
	assert.Empty(t, req.RequiredDeliverables)
}

func TestSetFieldAndFieldValueCoverEveryField(t *testing.T) {
	var req ServiceRequest
	for _, f := range Fields() {
		if f == FieldRequiredDeliverables {
			continue
		}
		req.SetField(f, "x")
		assert.Equal(t, "x", req.FieldValue(f), "field %s", f)
	}
}

func TestToggleDeliverable(t *testing.T) {
	var req ServiceRequest

	req.ToggleDeliverable(DeliverableExteriorPhotos, true)
	req.ToggleDeliverable(DeliverableDamageAssessment, true)
	req.ToggleDeliverable(DeliverableExteriorPhotos, true)
	assert.Equal(t, []Deliverable{DeliverableExteriorPhotos, DeliverableDamageAssessment}, req.RequiredDeliverables)

	req.ToggleDeliverable(DeliverableExteriorPhotos, false)
	assert.Equal(t, []Deliverable{DeliverableDamageAssessment}, req.RequiredDeliverables)

	req.ToggleDeliverable(DeliverableDocumentUpload, false)
	assert.Equal(t, []Deliverable{DeliverableDamageAssessment}, req.RequiredDeliverables)
}

func TestSetDeliverablesDeduplicates(t *testing.T) {
	var req ServiceRequest
	req.SetDeliverables([]Deliverable{
		DeliverableDocumentUpload,
		DeliverableExteriorPhotos,
		DeliverableDocumentUpload,
	})
	assert.Equal(t, []Deliverable{DeliverableDocumentUpload, DeliverableExteriorPhotos}, req.RequiredDeliverables)
}

func TestCloneDoesNotShareDeliverables(t *testing.T) {
	req := ServiceRequest{RequiredDeliverables: []Deliverable{DeliverableExteriorPhotos}}
	clone := req.Clone()
	clone.ToggleDeliverable(DeliverableDamageAssessment, true)

	assert.Len(t, req.RequiredDeliverables, 1)
	assert.Len(t, clone.RequiredDeliverables, 2)
}

func TestNewRequestID(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()

	assert.True(t, strings.HasPrefix(a, "req-"))
	assert.NotEqual(t, a, b)
}

func TestStateCodes(t *testing.T) {
	codes := StateCodes()
	require.Len(t, codes, 50)

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.Len(t, code, 2)
		assert.False(t, seen[code], "duplicate state code %s", code)
		seen[code] = true
	}

	for _, opt := range StateOptions() {
		assert.Equal(t, opt.Value, opt.Label)
	}
}
