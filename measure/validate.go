package measure

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alixdehghani/HyperMetrics/formula"
	"github.com/alixdehghani/HyperMetrics/model"
)

// Validation errors are data, not exceptions: every validator returns a list
// of human-readable strings the caller renders inline. The caller rejects a
// mutation that would introduce a duplicate before committing it; nothing
// here rolls anything back.

var embeddedCounterID = regexp.MustCompile(`\$(\d+)\$`)

// ValidateFormula checks one formula against the available counters. An
// empty formula is always an error; every identifier token must name an
// available counter.
func (n *Normalizer) ValidateFormula(f string, available []*model.Counter) []string {
	if strings.TrimSpace(f) == "" {
		return []string{"Formula is empty."}
	}

	scope := make(map[string]float64, len(available))
	names := make(map[string]struct{}, len(available))
	for _, c := range available {
		scope[c.Name] = 1
		names[c.Name] = struct{}{}
	}

	result := formula.Parse(f, scope)
	var errs []string
	if result.Custom.Error != "" {
		errs = append(errs, result.Custom.Error)
	}
	if result.Grammar.Error != "" {
		errs = append(errs, result.Grammar.Error)
	}
	for _, tok := range result.Tokens {
		if tok.Type != formula.TokenIdentifier {
			continue
		}
		if _, ok := names[tok.Token]; !ok {
			errs = append(errs, fmt.Sprintf("Invalid token %q in formula", tok.Token))
		}
	}
	return errs
}

// ValidateKPICounters cross-checks a KPI's derived references against the
// owning measure object: every numeric ID embedded in the $id$ formula
// variant and every entry of the used-counter list must correspond to a
// counter still present. Dangling references are reported, never dropped.
func (n *Normalizer) ValidateKPICounters(obj *model.MeasureObj, kpi *model.KPI) []string {
	present := make(map[string]*model.Counter, len(obj.CounterList))
	byID := make(map[string]struct{}, len(obj.CounterList))
	for _, c := range obj.CounterList {
		present[numericID(c)] = c
		byID[c.ID] = struct{}{}
	}

	var errs []string
	for _, match := range embeddedCounterID.FindAllStringSubmatch(kpi.FormulaWithCountersID, -1) {
		id := strings.TrimLeft(match[1], "0")
		if id == "" {
			id = "0"
		}
		if _, ok := present[id]; !ok {
			errs = append(errs, fmt.Sprintf("KPI %s – %s: formula references missing counter ID %s.", kpi.KpiID, kpi.Name, id))
		}
	}
	for _, used := range kpi.UsedCounters {
		if _, ok := byID[used.ID]; !ok {
			errs = append(errs, fmt.Sprintf("KPI %s – %s: counter reference %s no longer exists.", kpi.KpiID, kpi.Name, used.ID))
		}
	}
	return errs
}

// ValidateMeasureObjTypes checks category names and IDs for presence and
// uniqueness across the document.
func ValidateMeasureObjTypes(m *model.MeasureType) []string {
	var errs []string
	names := map[string]int{}
	ids := map[string]int{}
	for _, t := range m.MeasureObjTypeList {
		names[t.MeasureTypeName]++
		ids[t.MeasureObjTypeID]++
	}
	for _, t := range m.MeasureObjTypeList {
		if strings.TrimSpace(t.MeasureTypeName) == "" {
			errs = append(errs, fmt.Sprintf("Measure Type %s: name is required.", t.MeasureObjTypeID))
		} else if names[t.MeasureTypeName] > 1 {
			errs = append(errs, fmt.Sprintf("Measure Type %s – %s: name must be unique.", t.MeasureObjTypeID, t.MeasureTypeName))
		}
		if strings.TrimSpace(t.MeasureObjTypeID) == "" {
			errs = append(errs, fmt.Sprintf("Measure Type %s: Measure Type ID is required.", t.MeasureTypeName))
		} else if ids[t.MeasureObjTypeID] > 1 {
			errs = append(errs, fmt.Sprintf("Measure Type %s – %s: Measure Type ID must be unique.", t.MeasureObjTypeID, t.MeasureTypeName))
		}
	}
	return errs
}

// ValidateMeasureObjs checks measure object names and IDs for presence and
// uniqueness across the document.
func ValidateMeasureObjs(m *model.MeasureType) []string {
	var errs []string
	objs := m.AllMeasureObjs()
	names := map[string]int{}
	ids := map[string]int{}
	for _, o := range objs {
		names[o.Name]++
		ids[o.MeasureObjID]++
	}
	for _, o := range objs {
		if strings.TrimSpace(o.Name) == "" {
			errs = append(errs, fmt.Sprintf("Measure Object %s: name is required.", o.MeasureObjID))
		} else if names[o.Name] > 1 {
			errs = append(errs, fmt.Sprintf("Measure Object %s – %s: name must be unique.", o.MeasureObjID, o.Name))
		}
		if strings.TrimSpace(o.MeasureObjID) == "" {
			errs = append(errs, fmt.Sprintf("Measure Object %s: Measure Object ID is required.", o.Name))
		} else if ids[o.MeasureObjID] > 1 {
			errs = append(errs, fmt.Sprintf("Measure Object %s – %s: Measure Object ID must be unique.", o.MeasureObjID, o.Name))
		}
	}
	return errs
}

// ValidateCounters checks counter names and IDs within one category. Name
// uniqueness is enforced at the category scope, not per measure object.
func ValidateCounters(objType *model.MeasureObjType) []string {
	var errs []string
	counters := objType.AllCounters()
	names := map[string]int{}
	ids := map[string]int{}
	for _, c := range counters {
		names[c.Name]++
		ids[c.ID]++
	}
	for _, c := range counters {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Sprintf("Counter %s: name is required.", c.ID))
		} else if names[c.Name] > 1 {
			errs = append(errs, fmt.Sprintf("Counter %s – %s: name must be unique.", c.ID, c.Name))
		}
		if strings.TrimSpace(c.ID) == "" {
			errs = append(errs, fmt.Sprintf("Counter %s: Counter ID is required.", c.Name))
		} else if ids[c.ID] > 1 {
			errs = append(errs, fmt.Sprintf("Counter %s – %s: Counter ID must be unique.", c.ID, c.Name))
		}
	}
	return errs
}

// ValidateKPIs checks KPI names and IDs within one category and validates
// every formula against the category's counters.
func (n *Normalizer) ValidateKPIs(objType *model.MeasureObjType) []string {
	var errs []string
	kpis := objType.AllKPIs()
	names := map[string]int{}
	ids := map[string]int{}
	for _, k := range kpis {
		names[k.Name]++
		ids[k.KpiID]++
	}
	counters := objType.AllCounters()
	for _, k := range kpis {
		if strings.TrimSpace(k.Name) == "" {
			errs = append(errs, fmt.Sprintf("KPI %s: name is required.", k.KpiID))
		} else if names[k.Name] > 1 {
			errs = append(errs, fmt.Sprintf("KPI %s – %s: name must be unique.", k.KpiID, k.Name))
		}
		if strings.TrimSpace(k.KpiID) == "" {
			errs = append(errs, fmt.Sprintf("KPI %s: KPI ID is required.", k.Name))
		} else if ids[k.KpiID] > 1 {
			errs = append(errs, fmt.Sprintf("KPI %s – %s: KPI ID must be unique.", k.KpiID, k.Name))
		}
		errs = append(errs, n.ValidateFormula(k.Formula, counters)...)
	}
	return errs
}

// AllErrors aggregates every validator over the whole document.
func (n *Normalizer) AllErrors(m *model.MeasureType) []string {
	if m == nil {
		return []string{"No measure object found."}
	}
	var errs []string
	errs = append(errs, ValidateMeasureObjTypes(m)...)
	errs = append(errs, ValidateMeasureObjs(m)...)
	for _, objType := range m.MeasureObjTypeList {
		errs = append(errs, ValidateCounters(objType)...)
		errs = append(errs, n.ValidateKPIs(objType)...)
		for _, obj := range objType.MeasureObjList {
			for _, kpi := range obj.KpiList {
				errs = append(errs, n.ValidateKPICounters(obj, kpi)...)
			}
		}
	}
	return errs
}

// CounterNameInUse reports whether a counter name is already taken inside
// the category, ignoring the given counter itself.
func CounterNameInUse(objType *model.MeasureObjType, name string, self *model.Counter) bool {
	for _, c := range objType.AllCounters() {
		if c != self && c.Name == name {
			return true
		}
	}
	return false
}

// KPINameInUse reports whether a KPI name is already taken inside the
// category, ignoring the given KPI itself.
func KPINameInUse(objType *model.MeasureObjType, name string, self *model.KPI) bool {
	for _, k := range objType.AllKPIs() {
		if k != self && k.Name == name {
			return true
		}
	}
	return false
}
