// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"sync"
	"time"

	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/log"
)

// Default colors and fade delay.
const (
	DefaultAddedColor    = "#C6EFCE"
	DefaultModifiedColor = "#FFEB9C"
	DefaultDeletedColor  = "#FFC7CE"
	DefaultFadeAfter     = 5 * time.Second
)

// Cleanup reverts a highlight session. It is safe to call more than once and
// from any goroutine.
type Cleanup func()

type options struct {
	colors    map[differ.ChangeType]string
	fadeAfter time.Duration
}

// Option configures a highlight session.
type Option func(*options)

// WithAddedColor sets the background of added cells.
func WithAddedColor(c string) Option {
	return withColor(differ.Added, c)
}

// WithModifiedColor sets the background of modified cells.
func WithModifiedColor(c string) Option {
	return withColor(differ.Modified, c)
}

// WithDeletedColor sets the background of deleted cells.
func WithDeletedColor(c string) Option {
	return withColor(differ.Deleted, c)
}

func withColor(t differ.ChangeType, c string) Option {
	return func(o *options) {
		if c != "" {
			o.colors[t] = c
		}
	}
}

// WithFadeAfter sets the auto revert delay. Zero or less disables it.
func WithFadeAfter(d time.Duration) Option {
	return func(o *options) {
		o.fadeAfter = d
	}
}

func newOptions(opts []Option) options {
	o := options{
		colors: map[differ.ChangeType]string{
			differ.Added:    DefaultAddedColor,
			differ.Modified: DefaultModifiedColor,
			differ.Deleted:  DefaultDeletedColor,
		},
		fadeAfter: DefaultFadeAfter,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// HighlightChanges paints every cell change of diff.ModifiedSheets and returns
// the cleanup that restores the original styles. Sheets that cannot be
// resolved are skipped, as are individual cells whose style cannot be read or
// written. A nil editor or missing active workbook yields a no-op cleanup.
func HighlightChanges(editor Editor, diff differ.WorkbookDiff, opts ...Option) Cleanup {
	return Apply(editor, diff, opts...).Cleanup
}

// Apply is HighlightChanges returning the Session itself.
func Apply(editor Editor, diff differ.WorkbookDiff, opts ...Option) *Session {
	o := newOptions(opts)
	s := &Session{}

	wb := activeWorkbook(editor)
	if wb == nil {
		s.state = Reverted
		return s
	}

	for _, sc := range diff.ModifiedSheets {
		sheet, ok := wb.SheetBySheetID(sc.SheetID)
		if !ok {
			log.Debugf("highlight: sheet %s not found, skipping", sc.SheetID)
			continue
		}

		for _, cc := range sc.CellChanges {
			color, ok := o.colors[cc.Type]
			if !ok {
				continue
			}
			if revert, ok := paint(sheet, cc.Row, cc.Col, color); ok {
				s.reverts = append(s.reverts, revert)
			}
		}
	}

	s.start(o.fadeAfter)
	return s
}

// HighlightRange paints the numRows x numCols block at (row, col) of the given
// sheet with color. Each cell keeps its own captured style so a block with
// mixed styling restores exactly.
func HighlightRange(editor Editor, sheetID string, row, col, numRows, numCols int, color string, opts ...Option) Cleanup {
	o := newOptions(opts)
	s := &Session{}

	wb := activeWorkbook(editor)
	if wb == nil {
		s.state = Reverted
		return s.Cleanup
	}

	sheet, ok := wb.SheetBySheetID(sheetID)
	if !ok {
		log.Warnf("highlight: sheet %s not found", sheetID)
		s.state = Reverted
		return s.Cleanup
	}

	for r := row; r < row+numRows; r++ {
		for c := col; c < col+numCols; c++ {
			if revert, ok := paint(sheet, r, c, color); ok {
				s.reverts = append(s.reverts, revert)
			}
		}
	}

	s.start(o.fadeAfter)
	return s.Cleanup
}

func activeWorkbook(editor Editor) Workbook {
	if editor == nil {
		log.Warnf("highlight: %v", ErrNoActiveWorkbook)
		return nil
	}
	wb, err := editor.ActiveWorkbook()
	if err != nil || wb == nil {
		if err == nil {
			err = ErrNoActiveWorkbook
		}
		log.WithError(err).Warn("highlight: no workbook to paint")
		return nil
	}
	return wb
}

// paint overrides the background of one cell and returns the closure that
// puts the captured style back.
func paint(sheet Sheet, row, col int, color string) (func(), bool) {
	rng, err := sheet.Range(row, col, 1, 1)
	if err != nil {
		log.WithError(err).Warnf("highlight: cell %d,%d not addressable", row, col)
		return nil, false
	}

	original, err := rng.Style()
	if err != nil {
		log.WithError(err).Warnf("highlight: cell %d,%d style unreadable", row, col)
		return nil, false
	}

	override := original.Clone()
	override.Background = color
	if err := rng.SetStyle(override); err != nil {
		log.WithError(err).Warnf("highlight: cell %d,%d style not applied", row, col)
		return nil, false
	}

	restore := original.Clone()
	return func() {
		if err := rng.SetStyle(restore); err != nil {
			log.WithError(err).Warnf("highlight: cell %d,%d style not restored", row, col)
		}
	}, true
}

// State is the lifecycle of a Session.
type State int

const (
	Applied State = iota
	Reverted
)

func (s State) String() string {
	if s == Applied {
		return "applied"
	}
	return "reverted"
}

// Session is one applied highlight. It moves from Applied to Reverted exactly
// once, either through Cleanup or through the fade timer.
type Session struct {
	mu      sync.Mutex
	once    sync.Once
	state   State
	timer   *time.Timer
	reverts []func()
}

func (s *Session) start(fadeAfter time.Duration) {
	log.Debugf("highlight: %d cells painted", len(s.reverts))
	if fadeAfter > 0 {
		s.mu.Lock()
		s.timer = time.AfterFunc(fadeAfter, s.Cleanup)
		s.mu.Unlock()
	}
}

// Cleanup stops a pending fade and restores every painted cell. Calls after
// the first do nothing.
func (s *Session) Cleanup() {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.timer != nil {
			s.timer.Stop()
		}
		for _, revert := range s.reverts {
			revert()
		}
		s.state = Reverted
	})
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cells returns the number of cells the session painted.
func (s *Session) Cells() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reverts)
}
