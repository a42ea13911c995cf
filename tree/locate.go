package tree

import "github.com/alixdehghani/HyperMetrics/model"

// Index-path addressing: path[0] selects a ConfigObjType, every further
// index descends one configObjList level. All lookups guard every index and
// report a miss instead of panicking, so a stale path from the caller is a
// no-op rather than a crash.

// LocateType resolves the category at the given index.
func LocateType(cfg *model.ENodeBConfig, index int) (*model.ConfigObjType, bool) {
	if cfg == nil || index < 0 || index >= len(cfg.ConfigObjTypeList) {
		return nil, false
	}
	return cfg.ConfigObjTypeList[index], true
}

// LocateObj resolves the node addressed by the full index path.
func LocateObj(cfg *model.ENodeBConfig, path []int) (*model.ConfigObj, bool) {
	list, last, ok := SiblingList(cfg, path)
	if !ok {
		return nil, false
	}
	return (*list)[last], true
}

// SiblingList resolves the child slice holding the node addressed by the
// path, along with the node's index inside it. Mutating callers splice or
// replace through the returned slice pointer.
func SiblingList(cfg *model.ENodeBConfig, path []int) (*[]*model.ConfigObj, int, bool) {
	if len(path) < 2 {
		return nil, 0, false
	}
	cfgType, ok := LocateType(cfg, path[0])
	if !ok {
		return nil, 0, false
	}
	list := &cfgType.ConfigObjList
	for _, idx := range path[1 : len(path)-1] {
		if idx < 0 || idx >= len(*list) {
			return nil, 0, false
		}
		list = &(*list)[idx].ConfigObjList
	}
	last := path[len(path)-1]
	if last < 0 || last >= len(*list) {
		return nil, 0, false
	}
	return list, last, true
}
