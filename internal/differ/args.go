// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tfctl/wbctl/internal/log"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// PickPrompt is the positional argument that opens the interactive picker.
const PickPrompt = "+"

// Picker lets the user choose two versions out of a list.
type Picker func([]*snapshot.Version) []*snapshot.Version

// ParseDiffArgs collects at most two version specs from the positional
// arguments, stopping at the first thing that looks like a flag.
func ParseDiffArgs(args []string) (specs []string) {
	for _, a := range args {
		if len(specs) == 2 {
			return
		}

		// The definition of what is a flag is a little indeterminate. Negative
		// numbers are relative version indexes, not flags.
		_, err := strconv.Atoi(a)
		if a == PickPrompt ||
			strings.HasPrefix(strings.ToUpper(a), "SV~") ||
			err == nil ||
			!strings.HasPrefix(a, "-") {
			specs = append(specs, a)
			continue
		}
		return
	}
	return
}

// DiffSpecs turns the positional arguments into exactly two version specs,
// older first. With no arguments the two most recent versions are compared;
// with one the given version is compared against the most recent. The
// PickPrompt argument lists the versions and asks pick for two of them. A nil
// result with a nil error means the user cancelled the picker.
func DiffSpecs(args []string, versions func() ([]*snapshot.Version, error), pick Picker) ([]string, error) {
	specs := []string{"SV~1", "SV~0"}

	diffArgs := ParseDiffArgs(args)
	switch len(diffArgs) {
	case 0:
	case 1:
		if diffArgs[0] != PickPrompt {
			specs[0] = diffArgs[0]
			break
		}

		list, err := versions()
		if err != nil {
			return nil, fmt.Errorf("failed to list versions: %w", err)
		}

		selected := pick(list)
		log.Debugf("selected versions: %d", len(selected))
		if len(selected) != 2 {
			return nil, nil
		}
		// The list is most recent first, so the second pick is the older one.
		specs[0], specs[1] = selected[1].ID, selected[0].ID
		if selected[0].CreatedAt.Before(selected[1].CreatedAt) {
			specs[0], specs[1] = selected[0].ID, selected[1].ID
		}
	default:
		specs = diffArgs
	}

	return specs, nil
}
