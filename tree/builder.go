package tree

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/alixdehghani/HyperMetrics/ident"
	"github.com/alixdehghani/HyperMetrics/model"
)

// BindingDiagnostic reports how many tree nodes one conf-map entry matched.
// Anything other than exactly one match means the entry bound nothing.
type BindingDiagnostic struct {
	Key          string
	MatchedCount int
}

// Builder constructs one ConfigObjType from flat setting rows, a command
// catalog and a conf-map. A Builder is single-use: the node memo lives for
// one Build call and is discarded with it.
type Builder struct {
	logger zerolog.Logger
}

// NewBuilder returns a Builder logging through the given logger.
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{logger: logger}
}

type nodeEntry struct {
	obj       *model.ConfigObj
	rawParams []model.SettingItem
	cmdDefs   []model.CommandDef
}

type buildState struct {
	cfgType   *model.ConfigObjType
	nodes     map[string]*nodeEntry
	order     []string
	nextObjID int
}

// Build runs the four construction passes: container nodes, parameter
// staging, conf-map command binding and parameter materialization. Lookup
// misses are skipped, never fatal; binding outcomes are reported through the
// diagnostics list so callers can surface authoring mistakes.
func (b *Builder) Build(category, configTypeID string, settings []model.SettingItem, commands model.CommandCatalog, confMap model.ConfMap) (*model.ConfigObjType, []BindingDiagnostic) {
	state := &buildState{
		cfgType: &model.ConfigObjType{
			ConfigType:           category,
			MmlCommandNamePrefix: category,
			ConfigTypeID:         configTypeID,
			ConfigObjList:        []*model.ConfigObj{},
		},
		nodes:     make(map[string]*nodeEntry),
		nextObjID: ident.Seed(ident.ConfigObj),
	}

	settingsByName := indexSettings(settings)

	// Pass 1: container rows create (or merge into) their node, ancestors
	// included.
	for _, item := range settings {
		if item.IsGroup() && item.DataName != "" {
			parts := append(append([]string{}, item.ParentDataNames...), item.DataName)
			state.getOrCreate(parts, &item)
		}
	}

	// Pass 2: parameter rows are staged under their parent node. A row with
	// no parent path has nowhere to live and is dropped.
	for _, item := range settings {
		if !item.IsGroup() && item.DataName != "" {
			if len(item.ParentDataNames) == 0 {
				b.logger.Debug().Str("category", category).Str("param", item.DataName).Msg("parameter has no parent path, dropped")
				continue
			}
			entry := state.getOrCreate(item.ParentDataNames, nil)
			if entry != nil {
				entry.rawParams = append(entry.rawParams, item)
			}
		}
	}

	// Pass 3: conf-map binding over normalized paths. Only an unambiguous
	// match binds; zero or multiple matches are a recorded no-op.
	diagnostics := b.bindCommands(category, state, commands, confMap)

	// Pass 4: staged parameters are materialized against the commands bound
	// to their node.
	for _, key := range state.order {
		entry := state.nodes[key]
		for _, raw := range entry.rawParams {
			entry.obj.Params = append(entry.obj.Params, mergeParam(raw.DataName, entry.cmdDefs, settingsByName))
		}
		entry.rawParams = nil
		entry.cmdDefs = nil
	}

	return state.cfgType, diagnostics
}

func (s *buildState) getOrCreate(parts []string, item *model.SettingItem) *nodeEntry {
	if len(parts) == 0 {
		return nil
	}
	key := strings.Join(parts, "/")
	if entry, ok := s.nodes[key]; ok {
		if item != nil {
			applyGroupSetting(entry.obj, *item)
		}
		return entry
	}

	var parent *nodeEntry
	if len(parts) > 1 {
		parent = s.getOrCreate(parts[:len(parts)-1], nil)
	}

	name := parts[len(parts)-1]
	obj := &model.ConfigObj{
		ConfigObjID:    ident.ConfigObj.Format(s.nextObjID),
		DataName:       name,
		Title:          name,
		ShowInOSS:      true,
		ShowInUI:       true,
		ShowInNavMenue: true,
		OperationTypes: []*model.OperationType{},
		Params:         []*model.Parameter{},
		ConfigObjList:  []*model.ConfigObj{},
	}
	s.nextObjID++
	if item != nil {
		applyGroupSetting(obj, *item)
	}

	entry := &nodeEntry{obj: obj}
	s.nodes[key] = entry
	s.order = append(s.order, key)

	if parent != nil {
		parent.obj.ConfigObjList = append(parent.obj.ConfigObjList, obj)
	} else {
		s.cfgType.ConfigObjList = append(s.cfgType.ConfigObjList, obj)
	}
	return entry
}

// applyGroupSetting merges the fields a container row supplies into a node.
// Explicit values win over the defaults an implicitly created ancestor got.
func applyGroupSetting(obj *model.ConfigObj, item model.SettingItem) {
	if item.ParameterName != "" {
		obj.ParameterName = item.ParameterName
		obj.Title = item.ParameterName
	}
	if item.Abbreviation != "" {
		obj.Abbreviation = item.Abbreviation
	}
	if item.ShowInNavMenue != nil {
		obj.ShowInNavMenue = *item.ShowInNavMenue
	}
}

func (b *Builder) bindCommands(category string, state *buildState, commands model.CommandCatalog, confMap model.ConfMap) []BindingDiagnostic {
	byName := commands.ByName()

	keys := make([]string, 0, len(confMap))
	for key := range confMap {
		if confMap[key].Category == category {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	diagnostics := make([]BindingDiagnostic, 0, len(keys))
	for _, key := range keys {
		info := confMap[key]
		normPath := NormalizePath(info.NodePath)

		var matches []*nodeEntry
		for _, nodeKey := range state.order {
			if NormalizePath(nodeKey) == normPath {
				matches = append(matches, state.nodes[nodeKey])
			}
		}
		diagnostics = append(diagnostics, BindingDiagnostic{Key: key, MatchedCount: len(matches)})
		if len(matches) != 1 {
			b.logger.Debug().Str("category", category).Str("key", key).Int("matches", len(matches)).Msg("conf-map entry bound nothing")
			continue
		}

		cmdDef, ok := byName[key]
		if !ok {
			b.logger.Debug().Str("category", category).Str("key", key).Msg("no command definition for conf-map entry")
			continue
		}

		entry := matches[0]
		bindCommand(entry, key, info, cmdDef)
	}
	return diagnostics
}

func bindCommand(entry *nodeEntry, key string, info model.ConfMapEntry, cmdDef model.CommandDef) {
	obj := entry.obj
	if obj.ClassName == "" && info.ClassName != "" {
		obj.ClassName = info.ClassName
	}
	if obj.Module == "" && cmdDef.Module != "" {
		obj.Module = cmdDef.Module
	}
	if obj.MmlCommandNamePosfix == "" {
		obj.MmlCommandNamePosfix = capitalize(key)
	}

	var allowed map[string]struct{}
	if info.OperationTypes != nil {
		allowed = make(map[string]struct{}, len(info.OperationTypes))
		for _, t := range info.OperationTypes {
			allowed[t] = struct{}{}
		}
	}

	for _, cmd := range cmdDef.Commands {
		if allowed != nil {
			if _, ok := allowed[cmd.Type]; !ok {
				continue
			}
		}
		if hasOperation(obj, cmd.Name, cmd.MsgID) {
			continue
		}
		obj.OperationTypes = append(obj.OperationTypes, &model.OperationType{
			OperationName: cmd.Name,
			MsgID:         cmd.MsgID,
			OperationCode: cmd.Code,
			OperationType: cmd.Type,
			Title:         cmd.Title,
			IsDangerous:   cmd.IsDangerous,
		})
	}

	entry.cmdDefs = append(entry.cmdDefs, cmdDef)
}

func hasOperation(obj *model.ConfigObj, name, msgID string) bool {
	for _, op := range obj.OperationTypes {
		if op.OperationName == name && op.MsgID == msgID {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func indexSettings(settings []model.SettingItem) map[string]model.SettingItem {
	byName := make(map[string]model.SettingItem, len(settings))
	for _, item := range settings {
		if item.DataName != "" {
			byName[item.DataName] = item
		}
	}
	return byName
}

// mergeParam produces the final parameter for one staged setting row:
// command-sourced fields take priority, setting-sourced fields fill the
// display and editability metadata commands do not carry.
func mergeParam(paramName string, cmdDefs []model.CommandDef, settingsByName map[string]model.SettingItem) *model.Parameter {
	cmdParam := findCommandParam(paramName, cmdDefs)

	param := &model.Parameter{}
	if cmdParam != nil {
		param.ID = cmdParam.ID
		param.Name = cmdParam.Name
		param.Title = cmdParam.Title
		param.Type = cmdParam.Type
		param.Validation = cmdParam.Validation
		param.UIValidation = cmdParam.UIValidation
		param.DefaultValue = cmdParam.DefaultValue
		param.IsPrimaryKey = cmdParam.IsPrimaryKey
		param.Required = cmdParam.Required
		param.IsEnabled = cmdParam.IsEnabled == nil || *cmdParam.IsEnabled
		param.Unit = cmdParam.Unit
		if len(cmdParam.Filter) > 0 {
			param.Filter = cmdParam.Filter
		}
	} else {
		param.Name = paramName
		param.Title = paramName
		param.IsEnabled = true
	}

	cmdModeType := ""
	if cmdParam != nil {
		cmdModeType = cmdParam.ModeType
	}

	setting, hasSetting := settingsByName[paramName]
	if hasSetting {
		param.DataName = setting.DataName
		param.ParameterName = setting.ParameterName
		param.Abbreviation = setting.Abbreviation
		param.IsEditable = setting.IsEditable == nil || *setting.IsEditable
		param.ShowInWizard = setting.ShowInWizard
		param.ModeType = deriveModeType(cmdModeType, setting.InputType)
		if param.Filter == nil {
			if f := metaToFilter(setting.MetaData); len(f) > 0 {
				param.Filter = f
			}
		}
	} else {
		param.DataName = paramName
		param.ParameterName = param.Title
		param.Abbreviation = paramName
		param.IsEditable = true
		param.ModeType = deriveModeType(cmdModeType, "")
	}
	param.ShowInOSS = true
	param.ShowInUI = true

	return param
}

// findCommandParam matches by exact name or by name with underscores
// stripped, case-insensitively; the first hit across the bound commands wins.
func findCommandParam(paramName string, cmdDefs []model.CommandDef) *model.CommandParam {
	want := looseName(paramName)
	for _, def := range cmdDefs {
		for _, cmd := range def.Commands {
			for i := range cmd.Params {
				p := &cmd.Params[i]
				if p.Name == paramName || looseName(p.Name) == want {
					return p
				}
			}
		}
	}
	return nil
}

func looseName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// deriveModeType resolves a parameter's input mode: an explicit command mode
// wins, a select-family input type carries over lower-cased, everything else
// is a plain input.
func deriveModeType(cmdModeType, inputType string) string {
	if cmdModeType != "" {
		return cmdModeType
	}
	it := strings.ToLower(inputType)
	if it == "select" || it == "multiselect" {
		return it
	}
	return "input"
}

// metaToFilter reshapes select-type metaData entries into filter options.
func metaToFilter(meta any) []model.FilterOption {
	entries, ok := meta.([]any)
	if !ok {
		return nil
	}
	var out []model.FilterOption
	for _, raw := range entries {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		value := cast.ToString(m["value"])
		label := value
		if l, ok := m["label"]; ok && l != nil {
			label = cast.ToString(l)
		}
		out = append(out, model.FilterOption{Text: label, Value: value})
	}
	return out
}
