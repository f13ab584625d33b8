package domain

// Option pairs a wire value with the label the form layer renders for it.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func ServiceTypeOptions() []Option {
	return []Option{
		{Value: string(ServiceSiteInspection), Label: "On-site Inspection"},
		{Value: string(ServicePhotoCapture), Label: "Photo Capture"},
		{Value: string(ServiceDocumentPickup), Label: "Document Retrieval"},
		{Value: string(ServiceVehicleCondition), Label: "Vehicle Condition Report"},
		{Value: string(ServicePropertyCondition), Label: "Property Condition Report"},
	}
}

func PriorityOptions() []Option {
	return []Option{
		{Value: string(PriorityStandard), Label: "Standard (3-5 business days)"},
		{Value: string(PriorityExpedited), Label: "Expedited (48 hours)"},
		{Value: string(PriorityRush), Label: "Rush (24 hours)"},
	}
}

func AvailabilityWindowOptions() []Option {
	return []Option{
		{Value: string(WindowBusinessHours), Label: "Weekdays (8am - 5pm)"},
		{Value: string(WindowAfterHours), Label: "Evenings / Weekends"},
		{Value: string(WindowOnCall), Label: "On-call / Flexible"},
	}
}

func DeliverableOptions() []Option {
	return []Option{
		{Value: string(DeliverableExteriorPhotos), Label: "Exterior Photos"},
		{Value: string(DeliverableDamageAssessment), Label: "Damage Assessment"},
		{Value: string(DeliverableDocumentUpload), Label: "Document Upload"},
	}
}

// StateCodes are the 50 US state two-letter codes; value equals label.
func StateCodes() []string {
	return []string{
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
		"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
		"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
		"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
		"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
	}
}

func StateOptions() []Option {
	codes := StateCodes()
	options := make([]Option, len(codes))
	for i, code := range codes {
		options[i] = Option{Value: code, Label: code}
	}
	return options
}
