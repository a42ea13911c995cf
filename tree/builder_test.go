package tree

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alixdehghani/HyperMetrics/model"
)

func group(dataName string, parents ...string) model.SettingItem {
	return model.SettingItem{DataName: dataName, ParentDataNames: parents, HasParam: model.Bool(false)}
}

func param(dataName string, parents ...string) model.SettingItem {
	return model.SettingItem{DataName: dataName, ParentDataNames: parents, HasParam: model.Bool(true)}
}

func TestBuildMinimalTree(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, diags := b.Build("sib", "301", []model.SettingItem{
		group("sib1"),
		param("period", "sib1"),
	}, nil, nil)

	assert.Empty(t, diags)
	require.Len(t, cfgType.ConfigObjList, 1)
	root := cfgType.ConfigObjList[0]
	assert.Equal(t, "sib1", root.DataName)
	assert.Equal(t, "101", root.ConfigObjID)

	require.Len(t, root.Params, 1)
	p := root.Params[0]
	assert.Equal(t, "period", p.DataName)
	assert.Nil(t, p.ID)
	assert.Nil(t, p.Type)
	assert.True(t, p.IsEditable)
	assert.Equal(t, "input", p.ModeType)
}

func TestBuildCreatesMissingAncestors(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{
		group("0", "sib1", "sched_info"),
	}, nil, nil)

	require.Len(t, cfgType.ConfigObjList, 1)
	sib1 := cfgType.ConfigObjList[0]
	require.Len(t, sib1.ConfigObjList, 1)
	sched := sib1.ConfigObjList[0]
	require.Len(t, sched.ConfigObjList, 1)
	assert.Equal(t, "0", sched.ConfigObjList[0].DataName)
}

func TestBuildMergesRevisitedGroup(t *testing.T) {
	// An implicitly created ancestor later described by its own row keeps one
	// node and picks up the explicit fields.
	b := NewBuilder(zerolog.Nop())
	explicit := group("sib1")
	explicit.ParameterName = "System Information Block 1"
	explicit.Abbreviation = "SIB1"
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{
		group("sched_info", "sib1"),
		explicit,
	}, nil, nil)

	require.Len(t, cfgType.ConfigObjList, 1)
	sib1 := cfgType.ConfigObjList[0]
	assert.Equal(t, "System Information Block 1", sib1.ParameterName)
	assert.Equal(t, "SIB1", sib1.Abbreviation)
	require.Len(t, sib1.ConfigObjList, 1)
}

func TestBuildDropsOrphanParameter(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{
		group("sib1"),
		param("floating"),
	}, nil, nil)

	require.Len(t, cfgType.ConfigObjList, 1)
	assert.Empty(t, cfgType.ConfigObjList[0].Params)
}

func TestBuildIgnoresRowsWithoutDataName(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{
		{HasParam: model.Bool(false)},
		group("sib1"),
	}, nil, nil)
	assert.Len(t, cfgType.ConfigObjList, 1)
}

func testCatalog() model.CommandCatalog {
	return model.CommandCatalog{
		{
			Name:   "sib1Scheduling",
			Module: "rrm",
			Commands: []model.CommandSpec{
				{Name: "SET_SCHED", MsgID: "0x10", Code: "11", Type: "MOD", Title: "Set scheduling"},
				{Name: "GET_SCHED", MsgID: "0x11", Code: "12", Type: "QRY", Title: "Query scheduling"},
			},
		},
	}
}

func TestBindCommandsExactMatch(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	confMap := model.ConfMap{
		"sib1Scheduling": {
			Category:       "sib",
			ClassName:      "SchedulingInfo",
			OperationTypes: []string{"MOD"},
			NodePath:       "/sib1/schedulingInfo",
		},
	}
	cfgType, diags := b.Build("sib", "301", []model.SettingItem{
		group("sib1"),
		group("scheduling_info", "sib1"),
	}, testCatalog(), confMap)

	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].MatchedCount)

	node := cfgType.ConfigObjList[0].ConfigObjList[0]
	assert.Equal(t, "SchedulingInfo", node.ClassName)
	assert.Equal(t, "rrm", node.Module)
	assert.Equal(t, "Sib1Scheduling", node.MmlCommandNamePosfix)

	// The QRY command is filtered out by the allow-list.
	require.Len(t, node.OperationTypes, 1)
	op := node.OperationTypes[0]
	assert.Equal(t, "SET_SCHED", op.OperationName)
	assert.Equal(t, "MOD", op.OperationType)
}

func TestBindCommandsAmbiguousMatchBindsNothing(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	confMap := model.ConfMap{
		"sib1Scheduling": {
			Category: "sib",
			NodePath: "/sib1/schedulingInfo",
		},
	}
	// Two sibling spellings normalize to the same path.
	cfgType, diags := b.Build("sib", "301", []model.SettingItem{
		group("sib1"),
		group("scheduling_info", "sib1"),
		group("SchedulingInfo", "sib1"),
	}, testCatalog(), confMap)

	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].MatchedCount)
	for _, node := range cfgType.ConfigObjList[0].ConfigObjList {
		assert.Empty(t, node.OperationTypes)
		assert.Empty(t, node.ClassName)
	}
}

func TestBindCommandsZeroMatchIsDiagnosedNoOp(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	confMap := model.ConfMap{
		"sib1Scheduling": {Category: "sib", NodePath: "/nowhere"},
		"otherCategory":  {Category: "enb", NodePath: "/sib1"},
	}
	_, diags := b.Build("sib", "301", []model.SettingItem{group("sib1")}, testCatalog(), confMap)

	// Only the matching category's entry is considered.
	require.Len(t, diags, 1)
	assert.Equal(t, "sib1Scheduling", diags[0].Key)
	assert.Equal(t, 0, diags[0].MatchedCount)
}

func TestBindCommandsDeduplicatesOperations(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	catalog := model.CommandCatalog{
		{
			Name:   "dup",
			Module: "m",
			Commands: []model.CommandSpec{
				{Name: "SET", MsgID: "1", Type: "MOD"},
				{Name: "SET", MsgID: "1", Type: "MOD"},
			},
		},
	}
	confMap := model.ConfMap{"dup": {Category: "sib", NodePath: "/sib1"}}
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{group("sib1")}, catalog, confMap)
	assert.Len(t, cfgType.ConfigObjList[0].OperationTypes, 1)
}

func TestMergeParamPrefersCommandFields(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	catalog := model.CommandCatalog{
		{
			Name:   "sib1Cmd",
			Module: "rrm",
			Commands: []model.CommandSpec{
				{
					Name: "SET", MsgID: "1", Type: "MOD",
					Params: []model.CommandParam{
						{
							ID:         model.String("p-1"),
							Name:       "SchedPeriod",
							Title:      "Scheduling period",
							Type:       model.String(model.ParamTypeInteger),
							Validation: model.String("range 1..64"),
							Required:   true,
						},
					},
				},
			},
		},
	}
	confMap := model.ConfMap{"sib1Cmd": {Category: "sib", NodePath: "/sib1"}}

	row := param("sched_period", "sib1")
	row.ParameterName = "Scheduling Period"
	row.InputType = "number"
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{group("sib1"), row}, catalog, confMap)

	require.Len(t, cfgType.ConfigObjList[0].Params, 1)
	p := cfgType.ConfigObjList[0].Params[0]
	// Matched loosely: "sched_period" vs "SchedPeriod".
	require.NotNil(t, p.ID)
	assert.Equal(t, "p-1", *p.ID)
	assert.Equal(t, "Scheduling period", p.Title)
	require.NotNil(t, p.Type)
	assert.Equal(t, model.ParamTypeInteger, *p.Type)
	assert.True(t, p.Required)
	// Setting-sourced display metadata still lands.
	assert.Equal(t, "Scheduling Period", p.ParameterName)
	assert.Equal(t, "input", p.ModeType)
}

func TestMergeParamSelectMetaData(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	row := param("mode", "sib1")
	row.InputType = "select"
	row.MetaData = []any{
		map[string]any{"value": 0, "label": "off"},
		map[string]any{"value": 1},
	}
	cfgType, _ := b.Build("sib", "301", []model.SettingItem{group("sib1"), row}, nil, nil)

	require.Len(t, cfgType.ConfigObjList[0].Params, 1)
	p := cfgType.ConfigObjList[0].Params[0]
	assert.Equal(t, "select", p.ModeType)
	require.Len(t, p.Filter, 2)
	assert.Equal(t, model.FilterOption{Text: "off", Value: "0"}, p.Filter[0])
	assert.Equal(t, model.FilterOption{Text: "1", Value: "1"}, p.Filter[1])
}
