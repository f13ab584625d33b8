package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceRequest is the unit of exchange between the internal authoring
// side and the external fulfilment side. Field names are wire-significant.
type ServiceRequest struct {
	ID                   string             `json:"id,omitempty"`
	RequestTitle         string             `json:"requestTitle"`
	ServiceType          ServiceType        `json:"serviceType"`
	Priority             Priority           `json:"priority"`
	ClientAccount        string             `json:"clientAccount"`
	AddressLine1         string             `json:"addressLine1"`
	City                 string             `json:"city"`
	State                string             `json:"state"`
	PostalCode           string             `json:"postalCode"`
	ContactName          string             `json:"contactName"`
	ContactPhone         string             `json:"contactPhone"`
	PreferredDate        string             `json:"preferredDate"`
	AvailabilityWindow   AvailabilityWindow `json:"availabilityWindow"`
	RequiredDeliverables []Deliverable      `json:"requiredDeliverables"`
	Notes                string             `json:"notes"`
}

type Role string

const (
	RoleInternal Role = "internal"
	RoleExternal Role = "external"
	RoleUnknown  Role = "unknown"
)

// ParseRole never fails; anything outside the two participants is Unknown,
// which receives the external (least-privilege) policy everywhere.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleInternal:
		return RoleInternal
	case RoleExternal:
		return RoleExternal
	default:
		return RoleUnknown
	}
}

// Complement returns the other participant of the two-role exchange.
func (r Role) Complement() Role {
	if r == RoleInternal {
		return RoleExternal
	}
	return RoleInternal
}

type ServiceType string

const (
	ServiceSiteInspection    ServiceType = "site_inspection"
	ServicePhotoCapture      ServiceType = "photo_capture"
	ServiceDocumentPickup    ServiceType = "document_pickup"
	ServiceVehicleCondition  ServiceType = "vehicle_condition"
	ServicePropertyCondition ServiceType = "property_condition"
)

type Priority string

const (
	PriorityStandard  Priority = "standard"
	PriorityExpedited Priority = "expedited"
	PriorityRush      Priority = "rush"
)

type AvailabilityWindow string

const (
	WindowBusinessHours AvailabilityWindow = "business_hours"
	WindowAfterHours    AvailabilityWindow = "after_hours"
	WindowOnCall        AvailabilityWindow = "on_call"
)

type Deliverable string

const (
	DeliverableExteriorPhotos   Deliverable = "exterior_photos"
	DeliverableDamageAssessment Deliverable = "damage_assessment"
	DeliverableDocumentUpload   Deliverable = "document_upload"
)

// Field identifies a ServiceRequest field by its wire name, as used by the
// form controller's per-field update and editability checks.
type Field string

const (
	FieldRequestTitle         Field = "requestTitle"
	FieldServiceType          Field = "serviceType"
	FieldPriority             Field = "priority"
	FieldClientAccount        Field = "clientAccount"
	FieldAddressLine1         Field = "addressLine1"
	FieldCity                 Field = "city"
	FieldState                Field = "state"
	FieldPostalCode           Field = "postalCode"
	FieldContactName          Field = "contactName"
	FieldContactPhone         Field = "contactPhone"
	FieldPreferredDate        Field = "preferredDate"
	FieldAvailabilityWindow   Field = "availabilityWindow"
	FieldRequiredDeliverables Field = "requiredDeliverables"
	FieldNotes                Field = "notes"
)

// descriptiveFields are authored by the internal side; fulfillmentFields
// are authored by the external side. Together they cover every field.
var descriptiveFields = []Field{
	FieldRequestTitle,
	FieldServiceType,
	FieldPriority,
	FieldClientAccount,
	FieldAddressLine1,
	FieldCity,
	FieldState,
	FieldPostalCode,
	FieldContactName,
	FieldContactPhone,
	FieldPreferredDate,
	FieldAvailabilityWindow,
}

var fulfillmentFields = []Field{
	FieldRequiredDeliverables,
	FieldNotes,
}

// Fields returns every ServiceRequest field in schema order.
func Fields() []Field {
	all := make([]Field, 0, len(descriptiveFields)+len(fulfillmentFields))
	all = append(all, descriptiveFields...)
	return append(all, fulfillmentFields...)
}

// KnownField reports whether name is a ServiceRequest field.
func KnownField(name string) bool {
	for _, f := range Fields() {
		if f == Field(name) {
			return true
		}
	}
	return false
}

// RequiredFields are the fields that must be non-empty for a clean
// submission. Fulfillment fields are never required.
func RequiredFields() []Field {
	return []Field{
		FieldRequestTitle,
		FieldClientAccount,
		FieldAddressLine1,
		FieldCity,
		FieldState,
		FieldPostalCode,
		FieldContactName,
		FieldContactPhone,
		FieldPreferredDate,
	}
}

// InitialState returns the default draft for a role. The external
// clientAccount pre-fill is a default-priming convention, not validation.
func InitialState(role Role) ServiceRequest {
	req := ServiceRequest{
		ServiceType:          ServiceSiteInspection,
		Priority:             PriorityStandard,
		AvailabilityWindow:   WindowBusinessHours,
		RequiredDeliverables: []Deliverable{},
	}
	if role == RoleExternal {
		req.ClientAccount = "External Client Account"
	}
	return req
}

// EditableFields maps every field to whether the role may mutate it via
// the form. Internal owns the descriptive fields, external owns the
// fulfillment fields, and an unknown role gets the external policy.
func EditableFields(role Role) map[Field]bool {
	internal := role == RoleInternal
	editable := make(map[Field]bool, len(descriptiveFields)+len(fulfillmentFields))
	for _, f := range descriptiveFields {
		editable[f] = internal
	}
	for _, f := range fulfillmentFields {
		editable[f] = !internal
	}
	return editable
}

// RequiredFieldsSatisfied reports whether every required field is
// non-empty. Enforcement is the caller's concern.
func RequiredFieldsSatisfied(req ServiceRequest) bool {
	for _, f := range RequiredFields() {
		if req.FieldValue(f) == "" {
			return false
		}
	}
	return true
}

// SetField assigns a scalar field by wire name. The deliverables set is
// not a scalar and is mutated through SetDeliverables/ToggleDeliverable.
func (r *ServiceRequest) SetField(f Field, value string) {
	switch f {
	case FieldRequestTitle:
		r.RequestTitle = value
	case FieldServiceType:
		r.ServiceType = ServiceType(value)
	case FieldPriority:
		r.Priority = Priority(value)
	case FieldClientAccount:
		r.ClientAccount = value
	case FieldAddressLine1:
		r.AddressLine1 = value
	case FieldCity:
		r.City = value
	case FieldState:
		r.State = value
	case FieldPostalCode:
		r.PostalCode = value
	case FieldContactName:
		r.ContactName = value
	case FieldContactPhone:
		r.ContactPhone = value
	case FieldPreferredDate:
		r.PreferredDate = value
	case FieldAvailabilityWindow:
		r.AvailabilityWindow = AvailabilityWindow(value)
	case FieldNotes:
		r.Notes = value
	}
}

// FieldValue reads a scalar field by wire name. Deliverables report the
// joined set so emptiness checks behave uniformly.
func (r ServiceRequest) FieldValue(f Field) string {
	switch f {
	case FieldRequestTitle:
		return r.RequestTitle
	case FieldServiceType:
		return string(r.ServiceType)
	case FieldPriority:
		return string(r.Priority)
	case FieldClientAccount:
		return r.ClientAccount
	case FieldAddressLine1:
		return r.AddressLine1
	case FieldCity:
		return r.City
	case FieldState:
		return r.State
	case FieldPostalCode:
		return r.PostalCode
	case FieldContactName:
		return r.ContactName
	case FieldContactPhone:
		return r.ContactPhone
	case FieldPreferredDate:
		return r.PreferredDate
	case FieldAvailabilityWindow:
		return string(r.AvailabilityWindow)
	case FieldRequiredDeliverables:
		parts := make([]string, len(r.RequiredDeliverables))
		for i, d := range r.RequiredDeliverables {
			parts[i] = string(d)
		}
		return strings.Join(parts, ",")
	case FieldNotes:
		return r.Notes
	}
	return ""
}

// SetDeliverables replaces the deliverables set, deduplicating while
// preserving first-seen order.
func (r *ServiceRequest) SetDeliverables(values []Deliverable) {
	r.RequiredDeliverables = dedupeDeliverables(values)
}

// ToggleDeliverable adds or removes a single deliverable, keeping the set
// free of duplicates.
func (r *ServiceRequest) ToggleDeliverable(value Deliverable, selected bool) {
	current := dedupeDeliverables(r.RequiredDeliverables)
	next := make([]Deliverable, 0, len(current)+1)
	for _, d := range current {
		if d != value {
			next = append(next, d)
		}
	}
	if selected {
		next = append(next, value)
	}
	r.RequiredDeliverables = next
}

// Clone returns a deep copy, so callers can hand out drafts without
// sharing the deliverables slice.
func (r ServiceRequest) Clone() ServiceRequest {
	out := r
	out.RequiredDeliverables = dedupeDeliverables(r.RequiredDeliverables)
	return out
}

func dedupeDeliverables(values []Deliverable) []Deliverable {
	out := make([]Deliverable, 0, len(values))
	seen := make(map[Deliverable]bool, len(values))
	for _, d := range values {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// NewRequestID generates a request id: "req-" + ms timestamp + random
// suffix. Ids are never reused.
func NewRequestID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("req-%d-%s", time.Now().UnixMilli(), suffix)
}
