// Package measure maintains the derived state of a measurement document:
// numeric counter IDs, KPI counter cross-references and the counter-ID-keyed
// formula variants. Derivation is a full re-scan, invoked after every
// structural mutation; cost is O(counters x formula length) per pass, which
// the expected document sizes keep trivial.
package measure

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alixdehghani/HyperMetrics/formula"
	"github.com/alixdehghani/HyperMetrics/ident"
	"github.com/alixdehghani/HyperMetrics/model"
)

// Normalizer recomputes derived measurement state and propagates renames.
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer returns a Normalizer logging through the given logger.
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize re-derives the whole document in place: every counter's numeric
// ID (an imported value is kept, otherwise derived from the canonical ID),
// every KPI's used-counter list and its $id$ formula variant. The
// used-counter list is a textual re-scan against the owning measure object's
// counters, not a cached association; renaming a counter and re-running
// Normalize is how a KPI picks up or drops a reference.
func (n *Normalizer) Normalize(m *model.MeasureType) {
	if m == nil {
		return
	}
	for _, objType := range m.MeasureObjTypeList {
		for _, obj := range objType.MeasureObjList {
			for _, counter := range obj.CounterList {
				counter.NumericID = numericID(counter)
			}
			for _, kpi := range obj.KpiList {
				kpi.UsedCounters = usedCounters(kpi.Formula, obj.CounterList)
				kpi.FormulaWithCountersID = substituteCounterIDs(kpi.Formula, obj.CounterList)
			}
		}
	}
}

// RenameCounter renames a counter and rewrites the formula of every KPI that
// references it, then re-normalizes the document. When at least one KPI is
// affected the confirm callback decides whether the multi-record edit
// proceeds; declining leaves every record untouched. The return value
// reports whether the rename was applied.
func (n *Normalizer) RenameCounter(m *model.MeasureType, counter *model.Counter, newName string, confirm func(affected []*model.KPI) bool) bool {
	if m == nil || counter == nil || newName == "" || newName == counter.Name {
		return false
	}

	affected := n.KPIsUsingCounter(m, counter)
	if len(affected) > 0 && confirm != nil && !confirm(affected) {
		n.logger.Debug().Str("counter", counter.Name).Int("affected", len(affected)).Msg("counter rename declined")
		return false
	}

	oldName := counter.Name
	counter.Name = newName
	for _, kpi := range affected {
		kpi.Formula = formula.ReplaceWholeWord(kpi.Formula, oldName, newName)
	}
	n.Normalize(m)
	return true
}

// KPIsUsingCounter lists every KPI whose used-counter list or $id$ formula
// variant references the counter.
func (n *Normalizer) KPIsUsingCounter(m *model.MeasureType, counter *model.Counter) []*model.KPI {
	idToken := "$" + numericID(counter) + "$"
	var affected []*model.KPI
	for _, kpi := range m.AllKPIs() {
		if kpiReferences(kpi, counter, idToken) {
			affected = append(affected, kpi)
		}
	}
	return affected
}

// CountersUsedByKPI resolves the counters a KPI's formula references across
// the whole document.
func (n *Normalizer) CountersUsedByKPI(m *model.MeasureType, kpi *model.KPI) []*model.Counter {
	return usedCounters(kpi.Formula, m.AllCounters())
}

// KPICounterIDs returns the numeric IDs of the counters a KPI references, in
// counter-list order, as exported in kpiCounterList fields.
func (n *Normalizer) KPICounterIDs(m *model.MeasureType, kpi *model.KPI) []string {
	counters := usedCounters(kpi.Formula, m.AllCounters())
	ids := make([]string, 0, len(counters))
	for _, c := range counters {
		ids = append(ids, numericID(c))
	}
	return ids
}

// FormulaWithIDs rewrites a formula into its $numericId$ variant against the
// whole document's counters, as the derived-export renderers need it.
func (n *Normalizer) FormulaWithIDs(m *model.MeasureType, f string) string {
	return substituteCounterIDs(f, m.AllCounters())
}

func kpiReferences(kpi *model.KPI, counter *model.Counter, idToken string) bool {
	for _, used := range kpi.UsedCounters {
		if used.ID == counter.ID {
			return true
		}
	}
	return idToken != "$$" && strings.Contains(kpi.FormulaWithCountersID, idToken)
}

// usedCounters returns the subset of counters whose name occurs in the
// formula as a whole word.
func usedCounters(f string, counters []*model.Counter) []*model.Counter {
	if f == "" {
		return nil
	}
	var found []*model.Counter
	for _, c := range counters {
		if formula.ContainsWholeWord(f, c.Name) {
			found = append(found, c)
		}
	}
	return found
}

// substituteCounterIDs rewrites a formula into its $numericId$ variant.
// Whitespace is stripped first; substitution is whole-word so a counter name
// that is a substring of another is never partially replaced.
func substituteCounterIDs(f string, counters []*model.Counter) string {
	if f == "" {
		return ""
	}
	out := formula.StripWhitespace(f)
	for _, c := range counters {
		out = formula.ReplaceWholeWord(out, c.Name, "$"+numericID(c)+"$")
	}
	return out
}

// numericID derives a counter's bare numeric ID from its canonical C-prefixed
// zero-padded form.
func numericID(c *model.Counter) string {
	if c.NumericID != "" {
		return c.NumericID
	}
	n, ok := ident.Numeric(c.ID)
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}
