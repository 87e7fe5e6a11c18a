// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxParts is the number of summary parts shown before truncation.
const MaxParts = 3

// Catalog keys. The English catalog entries double as the fallback text.
const (
	keyCellsAdded    = "%d cells added"
	keyCellsModified = "%d cells modified"
	keyCellsDeleted  = "%d cells deleted"
	keySheetsAdded   = "%d sheets added"
	keySheetsDeleted = "%d sheets deleted"
	keyNoChanges     = "no changes"
	keySeparator     = ", "
	keyEllipsis      = "..."
)

// Languages lists the languages with a summary catalog. The first entry is
// the fallback.
var Languages = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(Languages)

func init() {
	en := language.English
	for key, forms := range map[string][2]string{
		keyCellsAdded:    {"%d cell added", "%d cells added"},
		keyCellsModified: {"%d cell modified", "%d cells modified"},
		keyCellsDeleted:  {"%d cell deleted", "%d cells deleted"},
		keySheetsAdded:   {"%d sheet added", "%d sheets added"},
		keySheetsDeleted: {"%d sheet deleted", "%d sheets deleted"},
	} {
		_ = message.Set(en, key, plural.Selectf(1, "%d",
			"=1", forms[0],
			"other", forms[1],
		))
	}
	_ = message.SetString(en, keyNoChanges, "no changes")
	_ = message.SetString(en, keySeparator, ", ")
	_ = message.SetString(en, keyEllipsis, "...")

	zh := language.SimplifiedChinese
	_ = message.SetString(zh, keyCellsAdded, "新增 %d 个单元格")
	_ = message.SetString(zh, keyCellsModified, "修改 %d 个单元格")
	_ = message.SetString(zh, keyCellsDeleted, "删除 %d 个单元格")
	_ = message.SetString(zh, keySheetsAdded, "新增 %d 个工作表")
	_ = message.SetString(zh, keySheetsDeleted, "删除 %d 个工作表")
	_ = message.SetString(zh, keyNoChanges, "无变更")
	_ = message.SetString(zh, keySeparator, "，")
	_ = message.SetString(zh, keyEllipsis, "…")
}

// ParseLanguage maps a locale string such as "en_US" or "zh-CN" onto the
// closest supported language. Unknown or empty input yields English.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return Languages[0]
	}
	t, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return Languages[0]
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return Languages[0]
	}
	return Languages[idx]
}

// summarize renders the ordered non-zero parts of stats, keeping at most
// MaxParts of them and appending the ellipsis marker when some were dropped.
func summarize(stats DiffStats, lang language.Tag) string {
	p := message.NewPrinter(ParseLanguage(lang.String()))

	counts := []struct {
		key string
		n   int
	}{
		{keyCellsAdded, stats.CellsAdded},
		{keyCellsModified, stats.CellsModified},
		{keyCellsDeleted, stats.CellsDeleted},
		{keySheetsAdded, stats.SheetsAdded},
		{keySheetsDeleted, stats.SheetsDeleted},
	}

	var parts []string
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, p.Sprintf(c.key, c.n))
		}
	}

	if len(parts) == 0 {
		return p.Sprintf(keyNoChanges)
	}

	sep := p.Sprintf(keySeparator)
	if len(parts) <= MaxParts {
		return strings.Join(parts, sep)
	}
	return strings.Join(parts[:MaxParts], sep) + sep + p.Sprintf(keyEllipsis)
}
