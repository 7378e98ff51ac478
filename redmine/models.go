package redmine

// Ticket is the JSON envelope Redmine wraps a single issue in:
// {"issue": {...}}.
type Ticket struct {
	Issue Issue `json:"issue"`
}

// Issue represents a Redmine issue. Fields the tool does not use
// (tracker, status, dates, ...) are ignored during decoding.
type Issue struct {
	ID           int           `json:"id"`
	Subject      string        `json:"subject"`
	FixedVersion NamedField    `json:"fixed_version"`
	AssignedTo   NamedField    `json:"assigned_to"`
	CustomFields []CustomField `json:"custom_fields"`
	Parent       *ParentRef    `json:"parent,omitempty"`
}

// NamedField is an id/name pair used for versions, users, categories.
type NamedField struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CustomField is a named project-specific field. Value is nil when the
// field is declared but unset on the issue.
type CustomField struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

// ParentRef points at the parent issue, when the issue has one.
type ParentRef struct {
	ID int `json:"id"`
}

// CustomFieldValue returns the value of the named custom field.
// The second result is false when the field is absent or unset.
func (i *Issue) CustomFieldValue(name string) (string, bool) {
	for _, f := range i.CustomFields {
		if f.Name == name {
			if f.Value == nil {
				return "", false
			}
			return *f.Value, true
		}
	}
	return "", false
}

// HasParent reports whether the issue references a parent issue.
func (i *Issue) HasParent() bool {
	return i.Parent != nil
}
