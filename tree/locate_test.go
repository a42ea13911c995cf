package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alixdehghani/HyperMetrics/model"
)

func locatorFixture() *model.ENodeBConfig {
	return &model.ENodeBConfig{
		ConfigObjTypeList: []*model.ConfigObjType{
			{
				ConfigType: "sib",
				ConfigObjList: []*model.ConfigObj{
					{
						DataName: "root",
						ConfigObjList: []*model.ConfigObj{
							{DataName: "childA"},
							{DataName: "childB", ConfigObjList: []*model.ConfigObj{{DataName: "leaf"}}},
						},
					},
				},
			},
			{ConfigType: "enb"},
		},
	}
}

func TestLocateType(t *testing.T) {
	cfg := locatorFixture()

	got, ok := LocateType(cfg, 1)
	require.True(t, ok)
	assert.Equal(t, "enb", got.ConfigType)

	_, ok = LocateType(cfg, 2)
	assert.False(t, ok)
	_, ok = LocateType(cfg, -1)
	assert.False(t, ok)
	_, ok = LocateType(nil, 0)
	assert.False(t, ok)
}

func TestLocateObj(t *testing.T) {
	cfg := locatorFixture()

	got, ok := LocateObj(cfg, []int{0, 0, 1, 0})
	require.True(t, ok)
	assert.Equal(t, "leaf", got.DataName)

	got, ok = LocateObj(cfg, []int{0, 0})
	require.True(t, ok)
	assert.Equal(t, "root", got.DataName)
}

func TestLocateObjStalePathIsMiss(t *testing.T) {
	cfg := locatorFixture()

	for _, path := range [][]int{
		nil,
		{0},
		{0, 5},
		{0, 0, 2},
		{0, 0, 0, 0},
		{3, 0},
	} {
		_, ok := LocateObj(cfg, path)
		assert.False(t, ok, "path %v", path)
	}
}

func TestSiblingListSplicing(t *testing.T) {
	cfg := locatorFixture()

	list, idx, ok := SiblingList(cfg, []int{0, 0, 0})
	require.True(t, ok)
	require.Equal(t, 0, idx)

	*list = append((*list)[:idx], (*list)[idx+1:]...)

	root, ok := LocateObj(cfg, []int{0, 0})
	require.True(t, ok)
	require.Len(t, root.ConfigObjList, 1)
	assert.Equal(t, "childB", root.ConfigObjList[0].DataName)
}
