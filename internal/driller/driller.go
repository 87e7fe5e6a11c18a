// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment: a key with an optional [n] or []
// suffix.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+)?\])?$`)

// Driller navigates a JSON document with a dot path such as old.style.fill or
// cells[2].value. A single element array is unwrapped when no index is given;
// longer arrays are returned whole. Invalid paths yield an empty result.
func Driller(jsonData string, path string) gjson.Result {
	return Drill(gjson.Parse(jsonData), path)
}

// Drill is Driller over an already parsed document.
func Drill(current gjson.Result, path string) gjson.Result {
	if path == "" {
		return gjson.Result{}
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if matches == nil {
			return gjson.Result{}
		}

		val := current.Get(gjson.Escape(matches[1]))
		if val.IsArray() {
			arr := val.Array()
			switch {
			case matches[3] != "":
				i, err := strconv.Atoi(matches[3])
				if err != nil || i >= len(arr) {
					return gjson.Result{}
				}
				val = arr[i]
			case len(arr) == 1:
				val = arr[0]
			}
		}

		current = val
	}

	return current
}
