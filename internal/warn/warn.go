// Package warn classifies aggregated rows against a date-warning rule.
//
// Two independent gates, preserved deliberately: a row becomes a candidate
// only when its elapsed days exceed the rule's warning threshold (strict),
// and candidates are then classified by remaining stability days against
// the 0 and near-band (default 30 day) boundaries. A candidate whose
// remaining days sit above the near band is OK and excluded from the
// warning set even though it passed the first gate.
package warn

import (
	"time"

	"github.com/mqzhang/stabwatch/internal/dates"
	"github.com/mqzhang/stabwatch/internal/log"
	"github.com/mqzhang/stabwatch/internal/model"
)

// DefaultNearBandDays is the remaining-days boundary between NEAR and OK.
const DefaultNearBandDays = 30

// WarningRow is a source row that survived both gates, annotated with the
// computed interval values and its status. Only NEAR and OVERDUE rows are
// produced; OK candidates are dropped.
type WarningRow struct {
	Row           model.Row
	ElapsedDays   int
	RemainingDays int
	Status        model.Status
}

// Result reports one evaluation pass over a dataset.
type Result struct {
	Warnings      []WarningRow
	Candidates    int // rows past the warning threshold, including OK ones
	ParseFailures int // rows excluded because a date failed to parse
}

// Options tunes an evaluation pass.
type Options struct {
	// NearBandDays overrides the NEAR/OK boundary; zero means the default.
	NearBandDays int
	// ExtraDateLayouts are tried before the built-in date layouts.
	ExtraDateLayouts []string
}

// Evaluate applies rule to every row of ds against the single instant now.
// The caller captures now once per run so that all rows in a pass share
// the same clock reading; Evaluate itself never reads the clock, which
// keeps it pure for a given input.
func Evaluate(ds *model.Dataset, rule model.Rule, now time.Time, opts Options) Result {
	var res Result
	if ds.Empty() {
		return res
	}
	if !ds.HasColumn(rule.StartColumn) {
		log.Debug("start column missing from dataset, no candidates",
			"column", rule.StartColumn)
		return res
	}

	nearBand := opts.NearBandDays
	if nearBand <= 0 {
		nearBand = DefaultNearBandDays
	}

	// The end-column fallback is gated on column presence: when the rule
	// names an end column the dataset does not carry, every row measures
	// against now instead.
	useEndColumn := rule.EndColumn != "" && ds.HasColumn(rule.EndColumn)

	for _, row := range ds.Rows {
		start, ok := dates.Parse(row[rule.StartColumn], opts.ExtraDateLayouts...)
		if !ok {
			res.ParseFailures++
			log.Debug("unparseable start date, row excluded",
				"column", rule.StartColumn, "value", row[rule.StartColumn])
			continue
		}

		end := now
		if useEndColumn {
			end, ok = dates.Parse(row[rule.EndColumn], opts.ExtraDateLayouts...)
			if !ok {
				res.ParseFailures++
				log.Debug("unparseable end date, row excluded",
					"column", rule.EndColumn, "value", row[rule.EndColumn])
				continue
			}
		}

		elapsed := dates.DaysBetween(start, end)
		remaining := rule.StabilityDays - elapsed

		// Gate one: strictly greater than the warning threshold.
		if elapsed <= rule.WarningDays {
			continue
		}
		res.Candidates++

		// Gate two: classify by remaining stability days.
		var status model.Status
		switch {
		case remaining <= 0:
			status = model.StatusOverdue
		case remaining <= nearBand:
			status = model.StatusNear
		default:
			status = model.StatusOK
		}
		if status == model.StatusOK {
			continue
		}

		res.Warnings = append(res.Warnings, WarningRow{
			Row:           row.Clone(),
			ElapsedDays:   elapsed,
			RemainingDays: remaining,
			Status:        status,
		})
	}
	return res
}
