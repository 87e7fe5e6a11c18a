// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows out of a flattened listing, such as the cell
// changes of a diff or the versions of a store.
//
// Filters are key-operator-target expressions joined by a comma, or by
// WBCTL_FILTER_DELIM when targets contain commas. Operators:
//
//   - = : exact match (numeric equality for numbers)
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric for numbers, lexical otherwise)
//   - > : greater than (numeric for numbers, lexical otherwise)
//   - @ : contains (substring, array element or object key)
//   - / : regular expression match
//
// Any operator is negated with a leading !, as in "type!=deleted".
//
// Examples:
//
//   - "type=added" : added cells only
//   - "sheet^Data" : sheets whose name starts with "Data"
//   - "row>10,col<3" : cells below row 10 in the first three columns
//   - "new!@draft" : new values not containing "draft"
//
// Keys are matched against attr titles first and otherwise drilled into the
// row as dot paths, so a filter may use fields that are not displayed. A row
// lacking the key fails the filter unless the filter is negated.
package filters
