// Package export renders the derived measurement artifacts consumed by the
// downstream performance-management pipeline. Every renderer is a pure
// function of the in-memory documents; writing the results anywhere is the
// caller's job.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alixdehghani/HyperMetrics/measure"
	"github.com/alixdehghani/HyperMetrics/model"
)

// Artifact file names, fixed by the consuming pipeline.
const (
	FileHyperConfig     = "hyperConfig.json"
	FileHyperCounterKpi = "hyper-counter-kpi.json"
	FileProperties      = "counters_kpi_list.properties"
	FileNoRealtime      = "eNodeB_No_Realtime.json"
	FileKpiSetting      = "kpi_setting.json"
	FileDefaultFormulas = "default_kpi_formulas.json"
	FileOSSConfig       = "oss-config.json"
)

// HyperConfig renders the configuration document as pretty-printed JSON.
func HyperConfig(cfg *model.ENodeBConfig) ([]byte, error) {
	return marshal(cfg)
}

// HyperMeasure renders the measurement document as pretty-printed JSON.
func HyperMeasure(m *model.MeasureType) ([]byte, error) {
	return marshal(m)
}

// Properties renders the flat key=value listing: one line per measurement
// category and measure object, then every counter, then every KPI. Counter
// keys are the raw counter IDs; KPI keys are the numeric KPI ID left-padded
// to ten digits behind a K.
func Properties(m *model.MeasureType) []byte {
	var b strings.Builder
	for _, objType := range m.MeasureObjTypeList {
		fmt.Fprintf(&b, "pm.measure.object.type.%s%s=%s\n", m.NeTypeID, objType.MeasureObjTypeID, objType.MeasureTypeName)
		for _, obj := range objType.MeasureObjList {
			fmt.Fprintf(&b, "pm.measure.object.%s%s%s=%s\n", m.NeTypeID, objType.MeasureObjTypeID, obj.MeasureObjID, strings.ToUpper(obj.Abbreviation))
		}
	}
	for _, c := range m.AllCounters() {
		fmt.Fprintf(&b, "%s=%s (%s)\n", c.ID, c.Name, c.Unit)
	}
	for _, k := range m.AllKPIs() {
		fmt.Fprintf(&b, "K%s=%s (%s)\n", padKpiID(k.KpiID), k.Name, k.Unit)
	}
	return []byte(b.String())
}

func padKpiID(id string) string {
	if len(id) >= 10 {
		return id
	}
	return strings.Repeat("0", 10-len(id)) + id
}

type noRealtimeKPI struct {
	KpiID          int    `json:"kpiId"`
	KpiCounterList string `json:"kpiCounterList"`
	Formula        string `json:"formula"`
}

type noRealtimeObj struct {
	MeasureObjID    string          `json:"measureObjId"`
	Name            string          `json:"name"`
	DataUpPeriodMod string          `json:"dataUpPeriodMod"`
	CounterList     []string        `json:"counterList"`
	KpiList         []noRealtimeKPI `json:"kpiList"`
}

type noRealtimeObjType struct {
	MeasureObjTypeID  string          `json:"measureObjTypeId"`
	Name              string          `json:"name"`
	CommAttributes    []string        `json:"commAttributes"`
	CommAttributeVals []string        `json:"commAttributeVals"`
	MeasureObj        []noRealtimeObj `json:"measureObj"`
}

type noRealtimeDoc struct {
	NeVersion          string              `json:"neVersion"`
	NeTypeID           string              `json:"neTypeId"`
	NeTypeName         string              `json:"neTypeName"`
	MeasureObjTypeList []noRealtimeObjType `json:"measureObjTypeList"`
}

// NoRealtime renders the network-element measurement descriptor: IDs are
// prefixed with the element and category IDs, counters collapse to bare
// counter IDs, and KPI formulas are rewritten to their $numericId$ form at
// document scope.
func NoRealtime(m *model.MeasureType, n *measure.Normalizer) ([]byte, error) {
	doc := noRealtimeDoc{
		NeVersion:  m.NeVersion,
		NeTypeID:   m.NeTypeID,
		NeTypeName: m.NeTypeName,
	}
	for _, objType := range m.MeasureObjTypeList {
		out := noRealtimeObjType{
			MeasureObjTypeID:  m.NeTypeID + objType.MeasureObjTypeID,
			Name:              objType.MeasureTypeName,
			CommAttributes:    []string{"cellId"},
			CommAttributeVals: []string{"U8"},
		}
		for _, obj := range objType.MeasureObjList {
			objOut := noRealtimeObj{
				MeasureObjID:    m.NeTypeID + objType.MeasureObjTypeID + obj.MeasureObjID,
				Name:            strings.TrimSpace(obj.Name),
				DataUpPeriodMod: "0",
				CounterList:     make([]string, 0, len(obj.CounterList)),
			}
			for _, c := range obj.CounterList {
				objOut.CounterList = append(objOut.CounterList, c.ID)
			}
			for _, kpi := range obj.KpiList {
				id, err := kpiNumericID(kpi)
				if err != nil {
					return nil, err
				}
				objOut.KpiList = append(objOut.KpiList, noRealtimeKPI{
					KpiID:          id,
					KpiCounterList: strings.Join(n.KPICounterIDs(m, kpi), ","),
					Formula:        n.FormulaWithIDs(m, kpi.Formula),
				})
			}
			out.MeasureObj = append(out.MeasureObj, objOut)
		}
		doc.MeasureObjTypeList = append(doc.MeasureObjTypeList, out)
	}
	return marshal(doc)
}

type kpiSettingCounter struct {
	CounterName string `json:"counter_name"`
	Cumulative  bool   `json:"cumulative"`
}

// KPISetting renders the per-category counter activation map, keyed by the
// measure object abbreviation lower-cased with hyphens removed.
func KPISetting(m *model.MeasureType) ([]byte, error) {
	setting := map[string][]kpiSettingCounter{}
	for _, obj := range m.AllMeasureObjs() {
		key := strings.ToLower(strings.ReplaceAll(obj.Abbreviation, "-", ""))
		if key == "" {
			continue
		}
		entries := make([]kpiSettingCounter, 0, len(obj.CounterList))
		for _, c := range obj.CounterList {
			entries = append(entries, kpiSettingCounter{CounterName: c.Name, Cumulative: c.Cumulative})
		}
		setting[key] = entries
	}
	return marshal(setting)
}

// DefaultKPIFormula is one entry of the default-formulas artifact.
type DefaultKPIFormula struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Formula     []string `json:"formula"`
	SubCategory string   `json:"sub_category"`
	Type        string   `json:"type"`
	Unit        string   `json:"unit"`
	SwitchOn    bool     `json:"switch_on"`
	Indicator   string   `json:"indicator"`
}

// DefaultFormulas renders every KPI as a pre-tokenized formula entry with
// sequential string IDs starting at 1. The unit field is "%" exactly when
// the KPI unit is "percent" and empty otherwise.
func DefaultFormulas(m *model.MeasureType) ([]byte, error) {
	formulas := []DefaultKPIFormula{}
	id := 1
	for _, obj := range m.AllMeasureObjs() {
		for _, kpi := range obj.KpiList {
			unit := ""
			if kpi.Unit == "percent" {
				unit = "%"
			}
			formulas = append(formulas, DefaultKPIFormula{
				ID:          fmt.Sprintf("%d", id),
				Name:        kpi.Name,
				Title:       kpi.Title,
				Formula:     SplitFormula(kpi.Formula),
				SubCategory: strings.ToUpper(obj.Abbreviation),
				Type:        kpi.Unit,
				Unit:        unit,
				SwitchOn:    true,
				Indicator:   strings.ToUpper(kpi.Indicator),
			})
			id++
		}
	}
	return marshal(formulas)
}

// SplitFormula strips all whitespace and splits the formula into a token
// array, keeping the operators and parentheses as their own tokens.
func SplitFormula(f string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range f {
		switch r {
		case ' ', '\t', '\n', '\r':
			// whitespace never joins two halves of one token here: the
			// operand grammar has no interior spaces
			continue
		case '+', '-', '*', '/', '(', ')':
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type ossEntry struct {
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type ossMeasureObj struct {
	Counters []ossEntry `json:"counters"`
	Kpis     []ossEntry `json:"kpis"`
}

type ossTimeMode struct {
	Name     string          `json:"name"`
	IsActive bool            `json:"isActive"`
	Options  *ossTimeOptions `json:"options"`
}

type ossTimeOptions struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ossDateRange struct {
	Name string `json:"name"`
	// the consumer reads this misspelled key verbatim
	IsActive  bool   `json:"isActivce"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// OSSTesting renders the end-to-end testing scaffold: every measure object
// with its counters and KPIs switched off, plus the fixed time-mode and
// date-range blocks the test harness expects.
func OSSTesting(m *model.MeasureType) ([]byte, error) {
	doc := map[string]interface{}{}
	for _, obj := range m.AllMeasureObjs() {
		entry := ossMeasureObj{Counters: []ossEntry{}, Kpis: []ossEntry{}}
		for _, c := range obj.CounterList {
			entry.Counters = append(entry.Counters, ossEntry{Name: c.Name})
		}
		for _, k := range obj.KpiList {
			entry.Kpis = append(entry.Kpis, ossEntry{Name: k.Name})
		}
		doc[obj.Name] = entry
	}
	doc["timeMode"] = []ossTimeMode{
		{Name: "Continuous"},
		{Name: "Section Time", IsActive: true, Options: &ossTimeOptions{StartTime: "12:34", EndTime: "13:30"}},
	}
	doc["dateRange"] = []ossDateRange{
		{Name: "Custom", IsActive: true, StartDate: "2025-10-01", EndDate: "2025-10-13"},
	}
	return marshal(doc)
}

func kpiNumericID(kpi *model.KPI) (int, error) {
	var id int
	if _, err := fmt.Sscanf(kpi.KpiID, "%d", &id); err != nil {
		return 0, fmt.Errorf("kpi %q: non-numeric id %q: %w", kpi.Name, kpi.KpiID, err)
	}
	return id, nil
}

func marshal(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return data, nil
}
