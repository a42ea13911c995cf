package service

import (
	"github.com/alixdehghani/HyperMetrics/model"
	"github.com/alixdehghani/HyperMetrics/tree"
)

// Configuration-side mutations. Node paths follow the locate convention:
// path[0] is the category index, every further index descends one
// configObjList level. Operations and parameters are addressed by the node
// path plus an element index. Every method reports whether it committed.

// UpdateHeader rewrites the network-element header fields.
func (s *Session) UpdateHeader(neVersion, neTypeID, neTypeName string) bool {
	s.mu.Lock()
	if s.config == nil {
		s.mu.Unlock()
		return false
	}
	s.config.NeVersion = neVersion
	s.config.NeTypeID = neTypeID
	s.config.NeTypeName = neTypeName
	s.mu.Unlock()
	s.persistConfig()
	return true
}

// AddConfigType appends a category.
func (s *Session) AddConfigType(configType *model.ConfigObjType) bool {
	s.mu.Lock()
	if s.config == nil || configType == nil {
		s.mu.Unlock()
		return false
	}
	s.config.ConfigObjTypeList = append(s.config.ConfigObjTypeList, configType)
	s.mu.Unlock()
	s.persistConfig()
	return true
}

// UpdateConfigType replaces the category at the index.
func (s *Session) UpdateConfigType(index int, configType *model.ConfigObjType) bool {
	s.mu.Lock()
	if configType == nil {
		s.mu.Unlock()
		return false
	}
	if _, ok := tree.LocateType(s.config, index); !ok {
		s.mu.Unlock()
		return false
	}
	s.config.ConfigObjTypeList[index] = configType
	s.mu.Unlock()
	s.persistConfig()
	return true
}

// DeleteConfigType removes the category at the index.
func (s *Session) DeleteConfigType(index int) bool {
	s.mu.Lock()
	if _, ok := tree.LocateType(s.config, index); !ok {
		s.mu.Unlock()
		return false
	}
	s.config.ConfigObjTypeList = append(s.config.ConfigObjTypeList[:index], s.config.ConfigObjTypeList[index+1:]...)
	s.mu.Unlock()
	s.persistConfig()
	return true
}

// AddConfigObj appends a node under the parent the path addresses: a
// one-element path targets the category root, a longer path targets an
// existing node.
func (s *Session) AddConfigObj(path []int, obj *model.ConfigObj) bool {
	s.mu.Lock()
	if obj == nil || len(path) == 0 {
		s.mu.Unlock()
		return false
	}
	var list *[]*model.ConfigObj
	if len(path) == 1 {
		configType, ok := tree.LocateType(s.config, path[0])
		if !ok {
			s.mu.Unlock()
			return false
		}
		list = &configType.ConfigObjList
	} else {
		parent, ok := tree.LocateObj(s.config, path)
		if !ok {
			s.mu.Unlock()
			return false
		}
		list = &parent.ConfigObjList
	}
	*list = append(*list, obj)
	s.mu.Unlock()
	s.persistConfig()
	return true
}

// UpdateConfigObj replaces the node the path addresses.
func (s *Session) UpdateConfigObj(path []int, obj *model.ConfigObj) bool {
	s.mu.Lock()
	if obj == nil {
		s.mu.Unlock()
		return false
	}
	siblings, idx, ok := tree.SiblingList(s.config, path)
	if !ok {
		s.mu.Unlock()
		return false
	}
	(*siblings)[idx] = obj
	s.mu.Unlock()
	s.persistConfig()
	return true
}

// DeleteConfigObj removes the node the path addresses, along with its
// subtree.
func (s *Session) DeleteConfigObj(path []int) bool {
	s.mu.Lock()
	siblings, idx, ok := tree.SiblingList(s.config, path)
	if !ok {
		s.mu.Unlock()
		return false
	}
	*siblings = append((*siblings)[:idx], (*siblings)[idx+1:]...)
	s.mu.Unlock()
	s.persistConfig()
	return true
}

// AddOperation appends an operation to the node the path addresses.
func (s *Session) AddOperation(path []int, op *model.OperationType) bool {
	return s.editNode(path, op != nil, func(node *model.ConfigObj) bool {
		node.OperationTypes = append(node.OperationTypes, op)
		return true
	})
}

// UpdateOperation replaces the operation at the index on the node the path
// addresses.
func (s *Session) UpdateOperation(path []int, index int, op *model.OperationType) bool {
	return s.editNode(path, op != nil, func(node *model.ConfigObj) bool {
		if index < 0 || index >= len(node.OperationTypes) {
			return false
		}
		node.OperationTypes[index] = op
		return true
	})
}

// DeleteOperation removes the operation at the index on the node the path
// addresses.
func (s *Session) DeleteOperation(path []int, index int) bool {
	return s.editNode(path, true, func(node *model.ConfigObj) bool {
		if index < 0 || index >= len(node.OperationTypes) {
			return false
		}
		node.OperationTypes = append(node.OperationTypes[:index], node.OperationTypes[index+1:]...)
		return true
	})
}

// AddParameter appends a parameter to the node the path addresses.
func (s *Session) AddParameter(path []int, param *model.Parameter) bool {
	return s.editNode(path, param != nil, func(node *model.ConfigObj) bool {
		node.Params = append(node.Params, param)
		return true
	})
}

// UpdateParameter replaces the parameter at the index on the node the path
// addresses.
func (s *Session) UpdateParameter(path []int, index int, param *model.Parameter) bool {
	return s.editNode(path, param != nil, func(node *model.ConfigObj) bool {
		if index < 0 || index >= len(node.Params) {
			return false
		}
		node.Params[index] = param
		return true
	})
}

// DeleteParameter removes the parameter at the index on the node the path
// addresses.
func (s *Session) DeleteParameter(path []int, index int) bool {
	return s.editNode(path, true, func(node *model.ConfigObj) bool {
		if index < 0 || index >= len(node.Params) {
			return false
		}
		node.Params = append(node.Params[:index], node.Params[index+1:]...)
		return true
	})
}

func (s *Session) editNode(path []int, valid bool, edit func(*model.ConfigObj) bool) bool {
	s.mu.Lock()
	if !valid {
		s.mu.Unlock()
		return false
	}
	node, ok := tree.LocateObj(s.config, path)
	if !ok || !edit(node) {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	s.persistConfig()
	return true
}
