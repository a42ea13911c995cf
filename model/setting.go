package model

// SettingItem is the flat, paged representation of one tree node or parameter.
// A row with HasParam pointing at false describes a container node; anything
// else (true or absent) describes a leaf parameter under ParentDataNames.
type SettingItem struct {
	DataName                string   `json:"dataName"`
	ParameterName           string   `json:"parameterName,omitempty"`
	Abbreviation            string   `json:"abbreviation,omitempty"`
	ParentDataNames         []string `json:"parentDataNames,omitempty"`
	ParentAbbreviationNames []string `json:"parentAbbreviationNames,omitempty"`
	HasParam                *bool    `json:"hasParam,omitempty"`
	IsEditable              *bool    `json:"isEditable,omitempty"`
	ShowInNavMenue          *bool    `json:"showInNavMenue,omitempty"`
	ShowInWizard            bool     `json:"showInWizard,omitempty"`
	InputType               string   `json:"inputType,omitempty"`
	MetaData                any      `json:"metaData,omitempty"`
}

// IsGroup reports whether the row describes a container node rather than a
// parameter. Only an explicit false counts; an absent flag means parameter.
func (s SettingItem) IsGroup() bool {
	return s.HasParam != nil && !*s.HasParam
}

// SelectOption is one metaData entry of a select-type setting.
type SelectOption struct {
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

// NumericRange is the metaData of a numeric setting. Both bounds are
// best-effort values recovered from a free-form validation string.
type NumericRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Bool returns a pointer to b, for filling optional setting flags in literals.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s.
func String(s string) *string { return &s }
