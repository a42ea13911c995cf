package measure

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alixdehghani/HyperMetrics/model"
)

func counters(names ...string) []*model.Counter {
	out := make([]*model.Counter, len(names))
	for i, name := range names {
		out[i] = &model.Counter{Name: name}
	}
	return out
}

func TestValidateFormulaEmpty(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	assert.Equal(t, []string{"Formula is empty."}, n.ValidateFormula("", nil))
	assert.Equal(t, []string{"Formula is empty."}, n.ValidateFormula("   ", counters("A")))
}

func TestValidateFormulaMalformedOperatorSequence(t *testing.T) {
	// The token-sequence layer deliberately lets operator runs through; the
	// expression grammar still has to reject this one.
	n := NewNormalizer(zerolog.Nop())
	errs := n.ValidateFormula("A + + B", counters("A", "B"))
	assert.NotEmpty(t, errs)
}

func TestValidateFormulaUnknownIdentifier(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	errs := n.ValidateFormula("A + C", counters("A", "B"))
	require.Len(t, errs, 1)
	assert.Equal(t, `Invalid token "C" in formula`, errs[0])
}

func TestValidateFormulaValid(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	assert.Empty(t, n.ValidateFormula("(A + B) * 100", counters("A", "B")))
}

func TestValidateKPICountersDanglingReference(t *testing.T) {
	obj := &model.MeasureObj{
		MeasureObjID: "8001",
		CounterList:  []*model.Counter{{Name: "A", ID: "C0000000001"}},
	}
	kpi := &model.KPI{
		KpiID:                 "110001",
		Name:                  "k",
		FormulaWithCountersID: "$1$+$2$",
		UsedCounters:          []*model.Counter{{Name: "B", ID: "C0000000002"}},
	}
	n := NewNormalizer(zerolog.Nop())
	errs := n.ValidateKPICounters(obj, kpi)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "missing counter ID 2")
	assert.Contains(t, errs[1], "C0000000002")
}

func TestValidateKPICountersClean(t *testing.T) {
	c := &model.Counter{Name: "A", ID: "C0000000001", NumericID: "1"}
	obj := &model.MeasureObj{CounterList: []*model.Counter{c}}
	kpi := &model.KPI{FormulaWithCountersID: "$1$*2", UsedCounters: []*model.Counter{c}}
	n := NewNormalizer(zerolog.Nop())
	assert.Empty(t, n.ValidateKPICounters(obj, kpi))
}

func TestValidateCountersUniquenessAtCategoryScope(t *testing.T) {
	objType := &model.MeasureObjType{
		MeasureObjTypeID: "101",
		MeasureObjList: []*model.MeasureObj{
			{MeasureObjID: "1001", CounterList: []*model.Counter{{Name: "dup", ID: "C0000000001"}}},
			{MeasureObjID: "1002", CounterList: []*model.Counter{{Name: "dup", ID: "C0000000002"}}},
		},
	}
	errs := ValidateCounters(objType)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "name must be unique")
}

func TestAllErrorsAggregates(t *testing.T) {
	doc := singleObjDocument(
		[]*model.Counter{{Name: "A", ID: "C0000000001"}},
		[]*model.KPI{{KpiID: "110001", Name: "k", Formula: ""}},
	)
	n := NewNormalizer(zerolog.Nop())
	errs := n.AllErrors(doc)
	assert.Contains(t, errs, "Formula is empty.")

	assert.Equal(t, []string{"No measure object found."}, n.AllErrors(nil))
}

func TestNameInUseHelpers(t *testing.T) {
	c := &model.Counter{Name: "A"}
	k := &model.KPI{Name: "k"}
	objType := &model.MeasureObjType{
		MeasureObjList: []*model.MeasureObj{{CounterList: []*model.Counter{c}, KpiList: []*model.KPI{k}}},
	}
	assert.False(t, CounterNameInUse(objType, "A", c))
	assert.True(t, CounterNameInUse(objType, "A", nil))
	assert.False(t, KPINameInUse(objType, "k", k))
	assert.True(t, KPINameInUse(objType, "k", nil))
}

func TestEnsureIDs(t *testing.T) {
	doc := singleObjDocument(
		[]*model.Counter{{Name: "A", ID: "C0000000003"}, {Name: "B"}},
		[]*model.KPI{{Name: "k"}},
	)
	doc.MeasureObjTypeList[0].MeasureObjList = append(doc.MeasureObjTypeList[0].MeasureObjList, &model.MeasureObj{Name: "fresh"})

	EnsureIDs(doc)

	assert.Equal(t, "C0000000004", doc.AllCounters()[1].ID)
	assert.Equal(t, "110001", doc.AllKPIs()[0].KpiID)
	assert.Equal(t, "8002", doc.AllMeasureObjs()[1].MeasureObjID)
}
