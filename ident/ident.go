// Package ident issues collision-free sequential identifiers for the
// configuration and measurement domains. All kinds share one strategy: parse
// the trailing digit run of every existing identifier, continue from the
// maximum, and probe upward until the formatted candidate is unused.
package ident

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind selects the canonical format and seed of an identifier family.
type Kind int

const (
	// ConfigType identifiers are bare decimals seeded at 101.
	ConfigType Kind = iota
	// ConfigObj identifiers are bare decimals seeded at 101.
	ConfigObj
	// MeasureObjType identifiers are bare decimals seeded at 101.
	MeasureObjType
	// MeasureObj identifiers are bare decimals seeded at 1001.
	MeasureObj
	// Counter identifiers are C-prefixed ten-digit decimals seeded at C0000000001.
	Counter
	// KPI identifiers are bare decimals seeded at 110001.
	KPI
)

var digitRun = regexp.MustCompile(`\d+`)

// Seed returns the first numeric value issued for a kind when nothing
// existing parses to a number.
func Seed(k Kind) int { return k.seed() }

// seed returns the first identifier issued when nothing existing parses.
func (k Kind) seed() int {
	switch k {
	case MeasureObj:
		return 1001
	case Counter:
		return 1
	case KPI:
		return 110001
	default:
		return 101
	}
}

// Format renders a numeric identifier in the kind's canonical form.
func (k Kind) Format(n int) string {
	if k == Counter {
		return fmt.Sprintf("C%010d", n)
	}
	return strconv.Itoa(n)
}

// Numeric extracts the value embedded in an identifier string: the last digit
// run, so decorated forms like "CT-3-v2" still parse. The second result is
// false when the identifier carries no digits.
func Numeric(id string) (int, bool) {
	runs := digitRun.FindAllString(id, -1)
	if len(runs) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(runs[len(runs)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next allocates the next identifier of the given kind: max(existing)+1,
// probed upward past any collision. Gaps in the existing sequence are never
// reused. With no parseable existing identifiers the kind's seed is issued.
func Next(kind Kind, existing []string) string {
	used := make(map[string]struct{}, len(existing))
	max := 0
	parsed := false
	for _, id := range existing {
		if id == "" {
			continue
		}
		used[id] = struct{}{}
		n, ok := Numeric(id)
		if !ok {
			continue
		}
		parsed = true
		if n > max {
			max = n
		}
	}
	if !parsed {
		return kind.Format(kind.seed())
	}
	candidate := max + 1
	for {
		formatted := kind.Format(candidate)
		if _, taken := used[formatted]; !taken {
			return formatted
		}
		candidate++
	}
}
