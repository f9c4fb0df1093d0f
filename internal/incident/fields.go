package incident

import "fmt"

// FieldSpec describes one form field in the SCIM-like metadata format the
// schema tools return.
type FieldSpec struct {
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Items           *FieldItem `json:"items,omitempty"`
	Mutability      string     `json:"mutability"`
	Returned        string     `json:"returned"`
	Required        bool       `json:"required"`
	MultiValued     bool       `json:"multiValued"`
	CaseExact       bool       `json:"caseExact"`
	Description     string     `json:"description"`
	CanonicalValues []string   `json:"canonicalValues,omitempty"`
	MaxLength       int        `json:"maxLength,omitempty"`
	Placeholder     string     `json:"placeholder,omitempty"`
}

// FieldItem describes the element type of a multi-valued field.
type FieldItem struct {
	Type string `json:"type"`
}

// Model names accepted by get_fields_schema.
const (
	ModelRequest        = "request"
	ModelServiceCatalog = "service_catalog"
	ModelProblem        = "problem"
)

// Models lists the accepted model names in schema order.
var Models = []string{ModelRequest, ModelServiceCatalog, ModelProblem}

// ValidModel reports whether m names a known model.
func ValidModel(m string) bool {
	for _, v := range Models {
		if m == v {
			return true
		}
	}
	return false
}

// UpdatableFields is the catalog returned by get_updatable_incident_fields:
// the incident fields update_incident will accept, with their constraints.
var UpdatableFields = []FieldSpec{
	{
		Name:        "title",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Short title of the incident",
		MaxLength:   200,
	},
	{
		Name:        "description",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Detailed description of the incident",
		MaxLength:   4000,
	},
	{
		Name:            "priority",
		Type:            "string",
		Mutability:      "readWrite",
		Returned:        "default",
		Description:     "Priority level of the incident",
		CanonicalValues: ValidPriorities,
	},
	{
		Name:            "status",
		Type:            "string",
		Mutability:      "readWrite",
		Returned:        "default",
		Description:     "Status of the incident",
		CanonicalValues: ValidStatuses,
	},
}

// RequestFields is the catalog returned by get_fields_schema for the request
// model: the full service-desk request form.
var RequestFields = []FieldSpec{
	{
		Name:        "Requester",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Required:    true,
		Description: "Requester of the incident",
	},
	{
		Name:        "Subject",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Required:    true,
		Description: "Subject of the incident",
		Placeholder: "Describe problem in short",
	},
	{
		Name:        "Cc Emails",
		Type:        "array",
		Items:       &FieldItem{Type: "string"},
		Mutability:  "readWrite",
		Returned:    "default",
		MultiValued: true,
		Description: "CC email addresses",
	},
	{
		Name:        "Description",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Description of the incident",
	},
	{
		Name:            "Status",
		Type:            "string",
		Mutability:      "readWrite",
		Returned:        "default",
		Description:     "Status of the incident",
		CanonicalValues: ValidStatuses,
	},
	{
		Name:            "Priority",
		Type:            "string",
		Mutability:      "readWrite",
		Returned:        "default",
		Description:     "Priority level of the incident",
		CanonicalValues: ValidPriorities,
	},
	{
		Name:            "Urgency",
		Type:            "string",
		Mutability:      "readWrite",
		Returned:        "default",
		Description:     "Urgency level of the incident",
		CanonicalValues: []string{"Low", "On User", "High", "Organisation"},
	},
	{
		Name:        "Impact",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Impact level of the incident",
	},
	{
		Name:        "Category",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Category of the incident",
	},
	{
		Name:        "Technician Group",
		Type:        "string",
		Mutability:  "readOnly",
		Returned:    "default",
		Description: "Technician group assigned to the incident",
	},
	{
		Name:        "Assignee",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Technician assigned to the incident",
	},
	{
		Name:        "Department",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Department of the requester",
	},
	{
		Name:        "Location",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Location related to the incident",
	},
	{
		Name:        "Tags",
		Type:        "array",
		Items:       &FieldItem{Type: "string"},
		Mutability:  "readWrite",
		Returned:    "default",
		MultiValued: true,
		Description: "Tags associated with the incident",
	},
	{
		Name:        "Attachment",
		Type:        "array",
		Items:       &FieldItem{Type: "string"},
		Mutability:  "readWrite",
		Returned:    "default",
		MultiValued: true,
		Description: "File attachments for the incident",
	},
	{
		Name:        "Vendor",
		Type:        "string",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Vendor associated with the incident",
	},
	{
		Name:        "Phone Number",
		Type:        "decimal",
		Mutability:  "readWrite",
		Returned:    "default",
		Description: "Phone number of the requester",
	},
}

// FieldsForModel returns the catalog for a model. Only the request model is
// populated today; the others are recognized names without a catalog yet.
func FieldsForModel(model string) ([]FieldSpec, error) {
	switch model {
	case ModelRequest:
		return RequestFields, nil
	case ModelServiceCatalog, ModelProblem:
		return nil, fmt.Errorf("Unsupported model: %s", model)
	default:
		return nil, fmt.Errorf("unknown model: %s", model)
	}
}

// RequiredFieldNames extracts the names of required fields from a catalog.
func RequiredFieldNames(fields []FieldSpec) []string {
	var names []string
	for _, f := range fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
