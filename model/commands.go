package model

// CommandDef is one entry of the external commands file: a named group of
// concrete commands sharing a module.
type CommandDef struct {
	Name     string        `json:"name"`
	Module   string        `json:"module"`
	Commands []CommandSpec `json:"commands"`
}

// CommandSpec is one concrete command inside a definition.
type CommandSpec struct {
	Name        string         `json:"name"`
	MsgID       string         `json:"msgId"`
	Code        string         `json:"code"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	IsDangerous bool           `json:"isDangerous"`
	Params      []CommandParam `json:"params,omitempty"`
}

// CommandParam is the parameter schema a command carries. These fields win
// over setting-sourced fields when a parameter is materialized.
type CommandParam struct {
	ID           *string        `json:"id"`
	Name         string         `json:"name"`
	Title        string         `json:"title"`
	Type         *string        `json:"type"`
	Validation   *string        `json:"validation"`
	UIValidation *string        `json:"uiValidation"`
	DefaultValue string         `json:"defaultValue"`
	ModeType     string         `json:"modeType,omitempty"`
	Unit         *string        `json:"unit"`
	Filter       []FilterOption `json:"filter,omitempty"`
	IsPrimaryKey bool           `json:"isPrimaryKey"`
	Required     bool           `json:"required"`
	IsEnabled    *bool          `json:"isEnabled"`
}

// CommandCatalog is the full commands file.
type CommandCatalog []CommandDef

// ByName indexes the catalog by definition name.
func (c CommandCatalog) ByName() map[string]CommandDef {
	byName := make(map[string]CommandDef, len(c))
	for _, def := range c {
		byName[def.Name] = def
	}
	return byName
}

// ConfMapEntry binds one conf-map key to a tree path plus command metadata.
type ConfMapEntry struct {
	Category       string   `json:"category"`
	ClassName      string   `json:"class_name"`
	OperationTypes []string `json:"operation_types,omitempty"`
	NodePath       string   `json:"node_path"`
	Filter         string   `json:"filter,omitempty"`
}

// ConfMap is the conf-map file, keyed by command name.
type ConfMap map[string]ConfMapEntry

// ExportCommand is one flattened node of the derived commands export: every
// operation of the node paired with every parameter of that same node.
type ExportCommand struct {
	PmoName  string            `json:"pmoName"`
	Module   string            `json:"module"`
	Commands []ExportOperation `json:"commands"`
}

// ExportOperation is one operation of an exported command, carrying the
// owning node's full parameter list.
type ExportOperation struct {
	Name        string       `json:"name"`
	MsgID       string       `json:"msgId"`
	Code        string       `json:"code"`
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	IsDangerous bool         `json:"isDangerous"`
	Params      []*Parameter `json:"params"`
}
