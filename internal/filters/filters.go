// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/tfctl/wbctl/internal/attrs"
	"github.com/tfctl/wbctl/internal/driller"
)

// filterRegex splits a filter expression into key, operator (with optional
// negation) and target. Operators are one of = ^ ~ < > @ or /. Examples:
// "type=added", "sheet^Data", "row>10", "new!@draft".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Values containing commas need a different delimiter.
	delim := ","
	if d, ok := os.LookupEnv("WBCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}
		if operand == "" {
			log.Error("invalid filter: missing operator in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset returns the candidate rows matching every filter in spec,
// each reduced to the values of attrs keyed by their OutputKey. Values are
// returned untransformed.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var filteredResults []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		result := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			if attr.Key == "*" {
				continue
			}
			result[attr.OutputKey] = driller.Drill(candidate, attr.Key).Value()
		}
		filteredResults = append(filteredResults, result)
	}

	return filteredResults
}

// applyFilters returns true if the candidate row matches all of filters. A
// filter key is either the OutputKey of an attr or a dot path into the row.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := filter.Key
		for _, attr := range attrs {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		value := driller.Drill(candidate, key).Value()
		if value == nil {
			// An absent value only satisfies a negated filter.
			if filter.Negate {
				continue
			}
			return false
		}

		var result bool
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, filter)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			result = checkNumericOperand(v, filter)
		default:
			result = checkContainsOperand(value, filter)
		}

		if !result {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership filter (operand '@') against
// array or object values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	if filter.Operand != "@" {
		log.Error(fmt.Sprintf("unsupported operand %q for %T", filter.Operand, value))
		return false
	}

	switch val := value.(type) {
	case []interface{}:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]interface{}:
		_, found := val[filter.Value]
		return found == !filter.Negate
	default:
		log.Error(fmt.Sprintf("unsupported type for contains filtering: %T", value))
		return false
	}
}

// checkNumericOperand compares a number against the filter value. Numbers are
// row and column indexes, serials and counts. Operands other than = > and <
// fall back to string semantics over the value's text.
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=", ">", "<":
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Error("invalid numeric value: " + filter.Value)
		return false
	}

	switch filter.Operand {
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return (value == tgt) == !filter.Negate
	}
}

// checkStringOperand evaluates a string comparison filter.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == filter.Value) == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return (value > filter.Value) == !filter.Negate
	case "<":
		return (value < filter.Value) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		re, err := regexp.Compile(filter.Value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return re.MatchString(value) == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
