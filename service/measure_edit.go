package service

import (
	"fmt"
	"strings"

	"github.com/alixdehghani/HyperMetrics/measure"
	"github.com/alixdehghani/HyperMetrics/model"
	"github.com/alixdehghani/HyperMetrics/store"
)

// Measurement-side mutations. Counters and KPIs are addressed by category,
// measure object and element index. Every committed mutation renormalizes
// the whole document before it is persisted, so the derived fields never go
// stale.

// UpdateMeasureHeader rewrites the measurement header fields.
func (s *Session) UpdateMeasureHeader(neVersion, neTypeID, neTypeName string) bool {
	s.mu.Lock()
	if s.measure == nil {
		s.mu.Unlock()
		return false
	}
	s.measure.NeVersion = neVersion
	s.measure.NeTypeID = neTypeID
	s.measure.NeTypeName = neTypeName
	s.renormalizeLocked()
	s.mu.Unlock()
	s.persistMeasure()
	return true
}

// AddMeasureObjType appends a measurement category, allocating its ID when
// missing. Duplicate category names are rejected.
func (s *Session) AddMeasureObjType(objType *model.MeasureObjType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.measure == nil || objType == nil {
		return fmt.Errorf("no measurement document loaded")
	}
	for _, existing := range s.measure.MeasureObjTypeList {
		if existing.MeasureTypeName == objType.MeasureTypeName {
			return fmt.Errorf("measure type %q already exists", objType.MeasureTypeName)
		}
	}
	if objType.MeasureObjTypeID == "" {
		objType.MeasureObjTypeID = measure.NextMeasureObjTypeID(s.measure)
	}
	s.measure.MeasureObjTypeList = append(s.measure.MeasureObjTypeList, objType)
	s.commitMeasureLocked()
	return nil
}

// DeleteMeasureObjType removes the category at the index.
func (s *Session) DeleteMeasureObjType(index int) bool {
	s.mu.Lock()
	if s.measureTypeLocked(index) == nil {
		s.mu.Unlock()
		return false
	}
	s.measure.MeasureObjTypeList = append(s.measure.MeasureObjTypeList[:index], s.measure.MeasureObjTypeList[index+1:]...)
	s.commitMeasureLocked()
	s.mu.Unlock()
	return true
}

// AddMeasureObj appends a measure object to the category, allocating its ID
// when missing.
func (s *Session) AddMeasureObj(typeIndex int, obj *model.MeasureObj) bool {
	s.mu.Lock()
	objType := s.measureTypeLocked(typeIndex)
	if objType == nil || obj == nil {
		s.mu.Unlock()
		return false
	}
	if obj.MeasureObjID == "" {
		obj.MeasureObjID = measure.NextMeasureObjID(s.measure)
	}
	objType.MeasureObjList = append(objType.MeasureObjList, obj)
	s.commitMeasureLocked()
	s.mu.Unlock()
	return true
}

// UpdateMeasureObj replaces the measure object at the index.
func (s *Session) UpdateMeasureObj(typeIndex, objIndex int, obj *model.MeasureObj) bool {
	s.mu.Lock()
	objType := s.measureTypeLocked(typeIndex)
	if objType == nil || obj == nil || objIndex < 0 || objIndex >= len(objType.MeasureObjList) {
		s.mu.Unlock()
		return false
	}
	objType.MeasureObjList[objIndex] = obj
	s.commitMeasureLocked()
	s.mu.Unlock()
	return true
}

// DeleteMeasureObj removes the measure object at the index along with its
// counters and KPIs.
func (s *Session) DeleteMeasureObj(typeIndex, objIndex int) bool {
	s.mu.Lock()
	objType := s.measureTypeLocked(typeIndex)
	if objType == nil || objIndex < 0 || objIndex >= len(objType.MeasureObjList) {
		s.mu.Unlock()
		return false
	}
	objType.MeasureObjList = append(objType.MeasureObjList[:objIndex], objType.MeasureObjList[objIndex+1:]...)
	s.commitMeasureLocked()
	s.mu.Unlock()
	return true
}

// AddCounter appends a counter to the measure object, allocating its ID when
// missing. Counter names are unique at the category scope.
func (s *Session) AddCounter(typeIndex, objIndex int, counter *model.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objType := s.measureTypeLocked(typeIndex)
	if objType == nil || counter == nil || objIndex < 0 || objIndex >= len(objType.MeasureObjList) {
		return fmt.Errorf("no measure object at %d/%d", typeIndex, objIndex)
	}
	if strings.TrimSpace(counter.Name) == "" {
		return fmt.Errorf("counter name is required")
	}
	if measure.CounterNameInUse(objType, counter.Name, nil) {
		return fmt.Errorf("counter %q already exists in %s", counter.Name, objType.MeasureTypeName)
	}
	if counter.ID == "" {
		counter.ID = measure.NextCounterID(s.measure)
	}
	objType.MeasureObjList[objIndex].CounterList = append(objType.MeasureObjList[objIndex].CounterList, counter)
	s.commitMeasureLocked()
	return nil
}

// RenameCounter renames the counter and rewrites every formula that
// references it. The confirm callback sees the affected KPIs; declining
// leaves the document untouched.
func (s *Session) RenameCounter(typeIndex, objIndex, counterIndex int, newName string, confirm func(affected []*model.KPI) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objType := s.measureTypeLocked(typeIndex)
	counter := counterAt(objType, objIndex, counterIndex)
	if counter == nil {
		return fmt.Errorf("no counter at %d/%d/%d", typeIndex, objIndex, counterIndex)
	}
	if strings.TrimSpace(newName) == "" {
		return fmt.Errorf("counter name is required")
	}
	if measure.CounterNameInUse(objType, newName, counter) {
		return fmt.Errorf("counter %q already exists in %s", newName, objType.MeasureTypeName)
	}
	if !s.normalizer.RenameCounter(s.measure, counter, newName, confirm) {
		return nil
	}
	s.commitMeasureLocked()
	return nil
}

// UpdateCounter rewrites the counter's non-name fields.
func (s *Session) UpdateCounter(typeIndex, objIndex, counterIndex int, unit string, cumulative bool) bool {
	s.mu.Lock()
	counter := counterAt(s.measureTypeLocked(typeIndex), objIndex, counterIndex)
	if counter == nil {
		s.mu.Unlock()
		return false
	}
	counter.Unit = unit
	counter.Cumulative = cumulative
	s.commitMeasureLocked()
	s.mu.Unlock()
	return true
}

// DeleteCounter removes the counter. Formulas still referencing it stay as
// written; the validators report the dangling references.
func (s *Session) DeleteCounter(typeIndex, objIndex, counterIndex int) bool {
	s.mu.Lock()
	objType := s.measureTypeLocked(typeIndex)
	if counterAt(objType, objIndex, counterIndex) == nil {
		s.mu.Unlock()
		return false
	}
	list := &objType.MeasureObjList[objIndex].CounterList
	*list = append((*list)[:counterIndex], (*list)[counterIndex+1:]...)
	s.commitMeasureLocked()
	s.mu.Unlock()
	return true
}

// AddKPI appends a KPI to the measure object, allocating its ID when
// missing. The formula must validate against the category's counters and
// KPI names are unique at the category scope.
func (s *Session) AddKPI(typeIndex, objIndex int, kpi *model.KPI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objType := s.measureTypeLocked(typeIndex)
	if objType == nil || kpi == nil || objIndex < 0 || objIndex >= len(objType.MeasureObjList) {
		return fmt.Errorf("no measure object at %d/%d", typeIndex, objIndex)
	}
	if measure.KPINameInUse(objType, kpi.Name, nil) {
		return fmt.Errorf("kpi %q already exists in %s", kpi.Name, objType.MeasureTypeName)
	}
	if errs := s.normalizer.ValidateFormula(kpi.Formula, objType.AllCounters()); len(errs) > 0 {
		return fmt.Errorf("invalid formula: %s", strings.Join(errs, "; "))
	}
	if kpi.KpiID == "" {
		kpi.KpiID = measure.NextKPIID(s.measure)
	}
	objType.MeasureObjList[objIndex].KpiList = append(objType.MeasureObjList[objIndex].KpiList, kpi)
	s.commitMeasureLocked()
	return nil
}

// UpdateKPI replaces the KPI at the index, keeping its ID when the
// replacement carries none.
func (s *Session) UpdateKPI(typeIndex, objIndex, kpiIndex int, kpi *model.KPI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objType := s.measureTypeLocked(typeIndex)
	current := kpiAt(objType, objIndex, kpiIndex)
	if current == nil || kpi == nil {
		return fmt.Errorf("no kpi at %d/%d/%d", typeIndex, objIndex, kpiIndex)
	}
	if measure.KPINameInUse(objType, kpi.Name, current) {
		return fmt.Errorf("kpi %q already exists in %s", kpi.Name, objType.MeasureTypeName)
	}
	if errs := s.normalizer.ValidateFormula(kpi.Formula, objType.AllCounters()); len(errs) > 0 {
		return fmt.Errorf("invalid formula: %s", strings.Join(errs, "; "))
	}
	if kpi.KpiID == "" {
		kpi.KpiID = current.KpiID
	}
	objType.MeasureObjList[objIndex].KpiList[kpiIndex] = kpi
	s.commitMeasureLocked()
	return nil
}

// DeleteKPI removes the KPI at the index.
func (s *Session) DeleteKPI(typeIndex, objIndex, kpiIndex int) bool {
	s.mu.Lock()
	objType := s.measureTypeLocked(typeIndex)
	if kpiAt(objType, objIndex, kpiIndex) == nil {
		s.mu.Unlock()
		return false
	}
	list := &objType.MeasureObjList[objIndex].KpiList
	*list = append((*list)[:kpiIndex], (*list)[kpiIndex+1:]...)
	s.commitMeasureLocked()
	s.mu.Unlock()
	return true
}

func (s *Session) measureTypeLocked(index int) *model.MeasureObjType {
	if s.measure == nil || index < 0 || index >= len(s.measure.MeasureObjTypeList) {
		return nil
	}
	return s.measure.MeasureObjTypeList[index]
}

func counterAt(objType *model.MeasureObjType, objIndex, counterIndex int) *model.Counter {
	if objType == nil || objIndex < 0 || objIndex >= len(objType.MeasureObjList) {
		return nil
	}
	obj := objType.MeasureObjList[objIndex]
	if counterIndex < 0 || counterIndex >= len(obj.CounterList) {
		return nil
	}
	return obj.CounterList[counterIndex]
}

func kpiAt(objType *model.MeasureObjType, objIndex, kpiIndex int) *model.KPI {
	if objType == nil || objIndex < 0 || objIndex >= len(objType.MeasureObjList) {
		return nil
	}
	obj := objType.MeasureObjList[objIndex]
	if kpiIndex < 0 || kpiIndex >= len(obj.KpiList) {
		return nil
	}
	return obj.KpiList[kpiIndex]
}

// commitMeasureLocked renormalizes and schedules the snapshot save. Callers
// hold the session lock.
func (s *Session) commitMeasureLocked() {
	s.renormalizeLocked()
	s.persistLocked(store.KeyHyperMeasure, s.measure)
}
