package measure

import (
	"github.com/alixdehghani/HyperMetrics/ident"
	"github.com/alixdehghani/HyperMetrics/model"
)

// NextMeasureObjTypeID allocates a category ID unused in the document.
func NextMeasureObjTypeID(m *model.MeasureType) string {
	var existing []string
	for _, t := range m.MeasureObjTypeList {
		existing = append(existing, t.MeasureObjTypeID)
	}
	return ident.Next(ident.MeasureObjType, existing)
}

// NextMeasureObjID allocates a measure object ID unused in the document.
func NextMeasureObjID(m *model.MeasureType) string {
	var existing []string
	for _, o := range m.AllMeasureObjs() {
		existing = append(existing, o.MeasureObjID)
	}
	return ident.Next(ident.MeasureObj, existing)
}

// NextCounterID allocates a counter ID unused in the document.
func NextCounterID(m *model.MeasureType) string {
	var existing []string
	for _, c := range m.AllCounters() {
		existing = append(existing, c.ID)
	}
	return ident.Next(ident.Counter, existing)
}

// NextKPIID allocates a KPI ID unused in the document.
func NextKPIID(m *model.MeasureType) string {
	var existing []string
	for _, k := range m.AllKPIs() {
		existing = append(existing, k.KpiID)
	}
	return ident.Next(ident.KPI, existing)
}

// EnsureIDs fills every missing identifier in the document, keeping existing
// ones untouched. New IDs are issued one at a time so later allocations see
// the earlier ones.
func EnsureIDs(m *model.MeasureType) {
	for _, t := range m.MeasureObjTypeList {
		if t.MeasureObjTypeID == "" {
			t.MeasureObjTypeID = NextMeasureObjTypeID(m)
		}
	}
	for _, o := range m.AllMeasureObjs() {
		if o.MeasureObjID == "" {
			o.MeasureObjID = NextMeasureObjID(m)
		}
	}
	for _, c := range m.AllCounters() {
		if c.ID == "" {
			c.ID = NextCounterID(m)
		}
	}
	for _, k := range m.AllKPIs() {
		if k.KpiID == "" {
			k.KpiID = NextKPIID(m)
		}
	}
}
