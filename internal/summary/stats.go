// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"golang.org/x/text/language"

	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// SheetCellEstimate is the number of cells credited for every added or
// deleted sheet. The cells inside a whole-sheet add or delete are not
// enumerated by the differ, so this is a rough estimate and not a count.
const SheetCellEstimate = 10

// DiffStats is the UI facing aggregate of a WorkbookDiff.
//
// TotalChanges here is not WorkbookDiff.TotalChanges. It includes the
// per-sheet cell estimates on top of the sheet counts.
type DiffStats struct {
	CellsAdded     int    `json:"cellsAdded" yaml:"cells-added"`
	CellsModified  int    `json:"cellsModified" yaml:"cells-modified"`
	CellsDeleted   int    `json:"cellsDeleted" yaml:"cells-deleted"`
	SheetsAdded    int    `json:"sheetsAdded" yaml:"sheets-added"`
	SheetsDeleted  int    `json:"sheetsDeleted" yaml:"sheets-deleted"`
	SheetsModified int    `json:"sheetsModified" yaml:"sheets-modified"`
	TotalChanges   int    `json:"totalChanges" yaml:"total-changes"`
	Summary        string `json:"summary" yaml:"summary"`
}

type options struct {
	estimate int
	lang     language.Tag
}

// Option configures CalculateDiffStats and StatsFromDiff.
type Option func(*options)

// WithSheetEstimate overrides SheetCellEstimate. Negative values are ignored.
func WithSheetEstimate(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.estimate = n
		}
	}
}

// WithLanguage selects the summary language. Unsupported languages fall back
// to English.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

func newOptions(opts []Option) options {
	o := options{estimate: SheetCellEstimate, lang: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CalculateDiffStats diffs old against new and aggregates the result. When
// either snapshot is nil the differ is not run and zero stats with the "no
// changes" summary are returned.
func CalculateDiffStats(old, new *snapshot.Snapshot, opts ...Option) DiffStats {
	o := newOptions(opts)
	if old == nil || new == nil {
		return DiffStats{Summary: summarize(DiffStats{}, o.lang)}
	}
	return aggregate(differ.DiffWorkbooks(old, new), o)
}

// StatsFromDiff aggregates an already computed diff.
func StatsFromDiff(diff differ.WorkbookDiff, opts ...Option) DiffStats {
	return aggregate(diff, newOptions(opts))
}

func aggregate(diff differ.WorkbookDiff, o options) DiffStats {
	var stats DiffStats

	for _, sc := range diff.ModifiedSheets {
		stats.CellsAdded += sc.Count(differ.Added)
		stats.CellsModified += sc.Count(differ.Modified)
		stats.CellsDeleted += sc.Count(differ.Deleted)
	}

	stats.SheetsAdded = len(diff.AddedSheets)
	stats.SheetsDeleted = len(diff.DeletedSheets)
	stats.SheetsModified = len(diff.ModifiedSheets)

	stats.CellsAdded += stats.SheetsAdded * o.estimate
	stats.CellsDeleted += stats.SheetsDeleted * o.estimate

	stats.TotalChanges = stats.CellsAdded + stats.CellsModified + stats.CellsDeleted +
		stats.SheetsAdded + stats.SheetsDeleted
	stats.Summary = summarize(stats, o.lang)

	return stats
}
