// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"regexp"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/filters"
)

var colorRegex = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator rejects a --filter that parses to nothing at all, which
// would otherwise silently list every row.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	spec := c.String("filter")
	if spec != "" && len(filters.BuildFilters(spec)) == 0 {
		return fmt.Errorf("invalid --filter: %q", spec)
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	for _, v := range validOutputFlagValues {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", validOutputFlagValues)
}

func PaddingValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// ColorValidator accepts RRGGBB or AARRGGBB hex colors with an optional #.
// The empty string keeps the default color.
func ColorValidator(value any) error {
	s, _ := value.(string)
	if s == "" || colorRegex.MatchString(s) {
		return nil
	}
	return fmt.Errorf("invalid color %q, want #RRGGBB", s)
}
