package model

// MeasureType is the aggregate measurement document: a network-element header
// plus one MeasureObjType per measurement category.
type MeasureType struct {
	NeVersion          string            `json:"neVersion"`
	NeTypeID           string            `json:"neTypeId"`
	NeTypeName         string            `json:"neTypeName"`
	MeasureObjTypeList []*MeasureObjType `json:"measureObjTypeList"`
}

// MeasureObjType is one measurement category. Counter and KPI names are
// unique at this scope, not merely within one measure object.
type MeasureObjType struct {
	MeasureTypeName  string        `json:"measureType"`
	MeasureObjTypeID string        `json:"measureObjTypeId"`
	MeasureObjList   []*MeasureObj `json:"measureObjList"`
}

// MeasureObj owns a list of raw counters and the KPIs derived from them.
type MeasureObj struct {
	MeasureObjID string     `json:"measureObjId"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
	CounterList  []*Counter `json:"counterList"`
	KpiList      []*KPI     `json:"kpiList"`
}

// Counter is one raw performance counter. NumericID is derived from ID by
// stripping the leading C and zeros; normalization fills it when absent but
// an imported value wins, so formulas keep binding to the IDs the document
// was authored with.
type Counter struct {
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	ID         string `json:"id"`
	Cumulative bool   `json:"cumulative"`
	NumericID  string `json:"_numericId,omitempty"`
}

// KPI is a derived indicator: a human-readable formula over counter names.
// FormulaWithCountersID and UsedCounters are derived on every normalization;
// UsedCounters is a non-owning back-reference list, never a source of truth.
type KPI struct {
	KpiID                 string     `json:"kpiId"`
	Formula               string     `json:"formula"`
	FormulaWithCountersID string     `json:"formulaWithCountersId,omitempty"`
	Name                  string     `json:"name"`
	Title                 string     `json:"title"`
	Indicator             string     `json:"indicator"`
	Unit                  string     `json:"unit"`
	UsedCounters          []*Counter `json:"_usedCounters,omitempty"`
}

// AllCounters returns every counter of every measure object in the category.
func (t *MeasureObjType) AllCounters() []*Counter {
	var counters []*Counter
	for _, obj := range t.MeasureObjList {
		counters = append(counters, obj.CounterList...)
	}
	return counters
}

// AllKPIs returns every KPI of every measure object in the category.
func (t *MeasureObjType) AllKPIs() []*KPI {
	var kpis []*KPI
	for _, obj := range t.MeasureObjList {
		kpis = append(kpis, obj.KpiList...)
	}
	return kpis
}

// AllMeasureObjs flattens the measure objects of every category.
func (m *MeasureType) AllMeasureObjs() []*MeasureObj {
	var objs []*MeasureObj
	for _, t := range m.MeasureObjTypeList {
		objs = append(objs, t.MeasureObjList...)
	}
	return objs
}

// AllCounters flattens the counters of every category.
func (m *MeasureType) AllCounters() []*Counter {
	var counters []*Counter
	for _, t := range m.MeasureObjTypeList {
		counters = append(counters, t.AllCounters()...)
	}
	return counters
}

// AllKPIs flattens the KPIs of every category.
func (m *MeasureType) AllKPIs() []*KPI {
	var kpis []*KPI
	for _, t := range m.MeasureObjTypeList {
		kpis = append(kpis, t.AllKPIs()...)
	}
	return kpis
}
