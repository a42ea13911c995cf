package model

// ENodeBConfig is the canonical persisted form of a configuration tree:
// a header describing the network element plus one subtree per category.
type ENodeBConfig struct {
	NeVersion         string           `json:"neVersion"`
	NeTypeID          string           `json:"neTypeId"`
	NeTypeName        string           `json:"neTypeName"`
	ConfigObjTypeList []*ConfigObjType `json:"configObjTypeList"`
}

// ConfigObjType is a top-level category of configuration objects ("sib", "enb", ...).
type ConfigObjType struct {
	ConfigType           string       `json:"configType"`
	MmlCommandNamePrefix string       `json:"mmlCommandNamePrefix"`
	ConfigTypeID         string       `json:"configTypeId"`
	ConfigObjList        []*ConfigObj `json:"configObjList"`
}

// ConfigObj is one node of the configuration tree, either a container or an
// addressable managed object carrying operations and parameters.
type ConfigObj struct {
	ConfigObjID          string           `json:"configObjId"`
	DataName             string           `json:"dataName"`
	Title                string           `json:"title"`
	ParameterName        string           `json:"parameterName"`
	Abbreviation         string           `json:"abbreviation"`
	MmlCommandNamePosfix string           `json:"mmlCommandNamePosfix"`
	ClassName            string           `json:"className"`
	Module               string           `json:"module"`
	OperationTypes       []*OperationType `json:"operationTypes"`
	ShowInOSS            bool             `json:"showInOSS"`
	ShowInUI             bool             `json:"showInUI"`
	ShowInNavMenue       bool             `json:"showInNavMenue"`
	Params               []*Parameter     `json:"params"`
	ConfigObjList        []*ConfigObj     `json:"configObjList,omitempty"`
}

// OperationType is one command bound to a configuration object. Within a node
// no two entries share the same (OperationName, MsgID) pair.
type OperationType struct {
	OperationName string `json:"operationName"`
	MsgID         string `json:"msgId"`
	OperationCode string `json:"operationCode"`
	OperationType string `json:"operationType"`
	Title         string `json:"title"`
	IsDangerous   bool   `json:"isDangerous"`
}

// Parameter is one editable field attached to a configuration object.
// Pointer fields stay nil when no command definition supplied a value.
type Parameter struct {
	ID            *string        `json:"id"`
	DataName      string         `json:"dataName"`
	Title         string         `json:"title"`
	ParameterName string         `json:"parameterName"`
	Abbreviation  string         `json:"abbreviation"`
	Name          string         `json:"name"`
	Unit          *string        `json:"unit"`
	DefaultValue  string         `json:"defaultValue"`
	Type          *string        `json:"type"`
	Validation    *string        `json:"validation"`
	UIValidation  *string        `json:"uiValidation"`
	Filter        []FilterOption `json:"filter,omitempty"`
	ModeType      string         `json:"modeType"`
	IsEditable    bool           `json:"isEditable"`
	ShowInWizard  bool           `json:"showInWizard"`
	ShowInOSS     bool           `json:"showInOSS"`
	ShowInUI      bool           `json:"showInUI"`
	IsPrimaryKey  bool           `json:"isPrimaryKey"`
	Required      bool           `json:"required"`
	IsEnabled     bool           `json:"isEnabled"`
}

// FilterOption is one selectable value of a select-type parameter.
type FilterOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Parameter types as they appear in command definitions.
const (
	ParamTypeInteger     = "Integer"
	ParamTypeOctetString = "OctetString"
	ParamTypeFloat       = "Float"
)
