package tree

import (
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alixdehghani/HyperMetrics/model"
)

func sampleSettings() []model.SettingItem {
	sib1 := group("sib1")
	sib1.Abbreviation = "SIB1"
	sched := group("sched_info", "sib1")
	period := param("period", "sib1", "sched_info")
	period.InputType = "number"
	window := param("window", "sib1")
	return []model.SettingItem{sib1, sched, period, window}
}

func TestFlattenSettingsShape(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, _ := b.Build("sib", "301", sampleSettings(), nil, nil)

	rows := FlattenSettings(cfgType)
	require.Len(t, rows, 4)

	assert.Equal(t, "sib1", rows[0].DataName)
	assert.True(t, rows[0].IsGroup())
	assert.Empty(t, rows[0].ParentDataNames)

	assert.Equal(t, "window", rows[1].DataName)
	assert.False(t, rows[1].IsGroup())
	assert.Equal(t, []string{"sib1"}, rows[1].ParentDataNames)
	assert.Equal(t, []string{"SIB1"}, rows[1].ParentAbbreviationNames)

	assert.Equal(t, "sched_info", rows[2].DataName)
	assert.Equal(t, []string{"sib1"}, rows[2].ParentDataNames)

	assert.Equal(t, "period", rows[3].DataName)
	assert.Equal(t, []string{"sib1", "sched_info"}, rows[3].ParentDataNames)
	// sched_info has no abbreviation, so the stack carries the "0" default.
	assert.Equal(t, []string{"SIB1", "0"}, rows[3].ParentAbbreviationNames)
}

func TestFlattenSuppressesPlaceholderRoot(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{
		group("0"),
		param("p1", "0"),
	}, nil, nil)

	rows := FlattenSettings(cfgType)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].DataName)
	assert.Equal(t, []string{"0"}, rows[0].ParentDataNames)
}

// Normalized paths plus per-node parameter names must survive a
// flatten/rebuild cycle; identifiers need not.
func TestFlattenRebuildRoundTrip(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	first, _ := b.Build("sib", "301", sampleSettings(), nil, nil)
	rebuilt, _ := NewBuilder(zerolog.Nop()).Build("sib", "301", FlattenSettings(first), nil, nil)

	assert.Equal(t, treeShape(first), treeShape(rebuilt))
}

func treeShape(cfgType *model.ConfigObjType) map[string][]string {
	shape := make(map[string][]string)
	var walk func(obj *model.ConfigObj, parents []string)
	walk = func(obj *model.ConfigObj, parents []string) {
		path := NormalizePath(JoinPath(parents, obj.DataName))
		names := make([]string, 0, len(obj.Params))
		for _, p := range obj.Params {
			names = append(names, p.DataName)
		}
		sort.Strings(names)
		shape[path] = names
		stack := append(append([]string{}, parents...), obj.DataName)
		for _, child := range obj.ConfigObjList {
			walk(child, stack)
		}
	}
	for _, obj := range cfgType.ConfigObjList {
		walk(obj, nil)
	}
	return shape
}

func TestSettingInputTypeAndMetaData(t *testing.T) {
	intType := model.ParamTypeInteger
	withFilter := &model.Parameter{
		DataName: "mode",
		Filter:   []model.FilterOption{{Text: "off", Value: "0"}},
	}
	numeric := &model.Parameter{
		DataName:   "period",
		Type:       &intType,
		Validation: model.String("value between 8 and 512"),
	}
	text := &model.Parameter{DataName: "label"}

	assert.Equal(t, "select", settingInputType(withFilter))
	assert.Equal(t, "number", settingInputType(numeric))
	assert.Equal(t, "text", settingInputType(text))

	options, ok := settingMetaData(withFilter).([]model.SelectOption)
	require.True(t, ok)
	require.Len(t, options, 1)
	assert.Equal(t, "off", options[0].Label)

	r, ok := settingMetaData(numeric).(*model.NumericRange)
	require.True(t, ok)
	assert.Equal(t, 8, r.Min)
	assert.Equal(t, 512, r.Max)

	assert.Nil(t, settingMetaData(text))
}

func TestParseRangeHeuristic(t *testing.T) {
	assert.Nil(t, ParseRange(nil))
	assert.Nil(t, ParseRange(model.String("non numeric")))
	assert.Nil(t, ParseRange(model.String("only 7")))

	r := ParseRange(model.String("1..64 dB"))
	require.NotNil(t, r)
	assert.Equal(t, 1, r.Min)
	assert.Equal(t, 64, r.Max)
}

func TestToConfMap(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, _ := b.Build("sib", "301", sampleSettings(), nil, nil)
	cfgType.ConfigObjList[0].ConfigObjList[0].MmlCommandNamePosfix = "SchedInfo"
	cfgType.ConfigObjList[0].ConfigObjList[0].OperationTypes = []*model.OperationType{
		{OperationName: "SET", OperationType: "MOD"},
		{OperationName: "GET", OperationType: "QRY"},
		{OperationName: "SET2", OperationType: "MOD"},
	}
	cfg := &model.ENodeBConfig{ConfigObjTypeList: []*model.ConfigObjType{cfgType}}

	confMap := ToConfMap(cfg)
	require.Len(t, confMap, 2)

	// Root key: prefix + PascalCase(abbreviation).
	root, ok := confMap["sibSIB1"]
	require.True(t, ok)
	assert.Equal(t, "/sib1", root.NodePath)
	assert.Equal(t, "window", root.Filter)

	child, ok := confMap["sibSIB1SchedInfo"]
	require.True(t, ok)
	assert.Equal(t, "/sib1/sched_info", child.NodePath)
	assert.Equal(t, []string{"MOD", "QRY"}, child.OperationTypes)
	assert.Equal(t, "period", child.Filter)
}

func TestToCommandCatalogCrossProduct(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, _ := b.Build("sib", "301", sampleSettings(), nil, nil)
	node := cfgType.ConfigObjList[0].ConfigObjList[0]
	node.Module = "rrm"
	node.OperationTypes = []*model.OperationType{
		{OperationName: "SET", MsgID: "1", OperationType: "MOD"},
		{OperationName: "GET", MsgID: "2", OperationType: "QRY"},
	}
	cfg := &model.ENodeBConfig{ConfigObjTypeList: []*model.ConfigObjType{cfgType}}

	catalog := ToCommandCatalog(cfg)
	require.Len(t, catalog, 2)

	assert.Equal(t, "sib.sib1", catalog[0].PmoName)
	assert.Equal(t, "sib.sib1.sched_info", catalog[1].PmoName)
	assert.Equal(t, "rrm", catalog[1].Module)

	// Every operation carries the node's own parameter list, nothing
	// inherited from the parent.
	require.Len(t, catalog[1].Commands, 2)
	for _, cmd := range catalog[1].Commands {
		require.Len(t, cmd.Params, 1)
		assert.Equal(t, "period", cmd.Params[0].DataName)
	}
	require.Len(t, catalog[0].Commands, 0)
}
