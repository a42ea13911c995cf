package tree

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alixdehghani/HyperMetrics/model"
)

// FlattenSettings walks one category depth-first, pre-order, and emits the
// flat setting rows the tree was (or could have been) built from: one
// container row per node, one parameter row per parameter. A node whose
// dataName is the literal "0" is a synthetic root placeholder and emits no
// container row of its own, though it still appears in its children's parent
// stacks.
func FlattenSettings(cfgType *model.ConfigObjType) []model.SettingItem {
	var out []model.SettingItem
	for _, obj := range cfgType.ConfigObjList {
		flattenNode(obj, nil, nil, &out)
	}
	return out
}

func flattenNode(obj *model.ConfigObj, parentDataNames, parentAbbrevs []string, out *[]model.SettingItem) {
	if obj.DataName != "0" {
		*out = append(*out, model.SettingItem{
			DataName:                obj.DataName,
			ParameterName:           obj.ParameterName,
			Abbreviation:            obj.Abbreviation,
			ParentDataNames:         copyStack(parentDataNames),
			ParentAbbreviationNames: copyStack(parentAbbrevs),
			HasParam:                model.Bool(false),
			ShowInNavMenue:          model.Bool(obj.ShowInNavMenue),
		})
	}

	abbr := obj.Abbreviation
	if abbr == "" {
		abbr = "0"
	}
	childDataNames := append(copyStack(parentDataNames), obj.DataName)
	childAbbrevs := append(copyStack(parentAbbrevs), abbr)

	for _, p := range obj.Params {
		*out = append(*out, model.SettingItem{
			DataName:                p.DataName,
			ParameterName:           p.ParameterName,
			Abbreviation:            p.Abbreviation,
			ParentDataNames:         copyStack(childDataNames),
			ParentAbbreviationNames: copyStack(childAbbrevs),
			HasParam:                model.Bool(true),
			IsEditable:              model.Bool(p.IsEditable),
			ShowInWizard:            p.ShowInWizard,
			InputType:               settingInputType(p),
			MetaData:                settingMetaData(p),
		})
	}

	for _, child := range obj.ConfigObjList {
		flattenNode(child, childDataNames, childAbbrevs, out)
	}
}

func settingInputType(p *model.Parameter) string {
	if len(p.Filter) > 0 {
		return "select"
	}
	if p.Type != nil && (*p.Type == model.ParamTypeInteger || *p.Type == model.ParamTypeFloat) {
		return "number"
	}
	return "text"
}

func settingMetaData(p *model.Parameter) any {
	if len(p.Filter) > 0 {
		options := make([]model.SelectOption, 0, len(p.Filter))
		for _, f := range p.Filter {
			options = append(options, model.SelectOption{Value: f.Value, Label: f.Text})
		}
		return options
	}
	if p.Type != nil && (*p.Type == model.ParamTypeInteger || *p.Type == model.ParamTypeFloat) {
		if r := ParseRange(p.Validation); r != nil {
			return r
		}
	}
	return nil
}

var integerRun = regexp.MustCompile(`\d+`)

// ParseRange recovers a numeric range from a free-form validation string by
// taking its first two integer substrings as min and max. This is a
// best-effort heuristic, not a validation-grammar parser: anything without
// two integers yields nil.
func ParseRange(validation *string) *model.NumericRange {
	if validation == nil {
		return nil
	}
	runs := integerRun.FindAllString(*validation, -1)
	if len(runs) < 2 {
		return nil
	}
	min, err := strconv.Atoi(runs[0])
	if err != nil {
		return nil
	}
	max, err := strconv.Atoi(runs[1])
	if err != nil {
		return nil
	}
	return &model.NumericRange{Min: min, Max: max}
}

// ToConfMap derives the conf-map from a full configuration: one entry per
// node, keyed by the concatenated command-name chain seeded with the
// category's command prefix. Later nodes win when two chains collide on the
// same key.
func ToConfMap(cfg *model.ENodeBConfig) model.ConfMap {
	out := model.ConfMap{}
	for _, cfgType := range cfg.ConfigObjTypeList {
		for _, obj := range cfgType.ConfigObjList {
			confMapNode(obj, cfgType, cfgType.MmlCommandNamePrefix, nil, out)
		}
	}
	return out
}

func confMapNode(obj *model.ConfigObj, cfgType *model.ConfigObjType, parentKey string, pathStack []string, out model.ConfMap) {
	key := parentKey + commandPosfix(obj)
	stack := append(copyStack(pathStack), obj.DataName)

	var opTypes []string
	seen := map[string]struct{}{}
	for _, op := range obj.OperationTypes {
		if _, ok := seen[op.OperationType]; ok {
			continue
		}
		seen[op.OperationType] = struct{}{}
		opTypes = append(opTypes, op.OperationType)
	}

	filterNames := make([]string, 0, len(obj.Params))
	for _, p := range obj.Params {
		filterNames = append(filterNames, p.DataName)
	}

	out[key] = model.ConfMapEntry{
		Category:       cfgType.ConfigType,
		ClassName:      obj.ClassName,
		OperationTypes: opTypes,
		NodePath:       "/" + strings.Join(stack, "/"),
		Filter:         strings.Join(filterNames, ","),
	}

	for _, child := range obj.ConfigObjList {
		confMapNode(child, cfgType, key, stack, out)
	}
}

func commandPosfix(obj *model.ConfigObj) string {
	if obj.MmlCommandNamePosfix != "" {
		return obj.MmlCommandNamePosfix
	}
	source := obj.Abbreviation
	if source == "" {
		source = obj.DataName
	}
	return pascalCase(source)
}

var wordSplit = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func pascalCase(s string) string {
	var b strings.Builder
	for _, word := range wordSplit.Split(s, -1) {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}

// ToCommandCatalog flattens every node into one exported command whose
// pmoName threads the dataName chain from the category name down, and whose
// command list pairs every operation of the node with every parameter of
// that same node. The cross product is deliberate: parameters are not
// filtered per operation and never inherited across levels.
func ToCommandCatalog(cfg *model.ENodeBConfig) []model.ExportCommand {
	var out []model.ExportCommand
	for _, cfgType := range cfg.ConfigObjTypeList {
		for _, obj := range cfgType.ConfigObjList {
			catalogNode(obj, cfgType.ConfigType, &out)
		}
	}
	return out
}

func catalogNode(obj *model.ConfigObj, parentPath string, out *[]model.ExportCommand) {
	pmoName := parentPath + "." + obj.DataName

	commands := make([]model.ExportOperation, 0, len(obj.OperationTypes))
	for _, op := range obj.OperationTypes {
		commands = append(commands, model.ExportOperation{
			Name:        op.OperationName,
			MsgID:       op.MsgID,
			Code:        op.OperationCode,
			Type:        op.OperationType,
			Title:       op.Title,
			IsDangerous: op.IsDangerous,
			Params:      obj.Params,
		})
	}

	*out = append(*out, model.ExportCommand{
		PmoName:  pmoName,
		Module:   obj.Module,
		Commands: commands,
	})

	for _, child := range obj.ConfigObjList {
		catalogNode(child, pmoName, out)
	}
}

func copyStack(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
