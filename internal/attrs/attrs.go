// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/wbctl/internal/log"
)

// lengthRegex finds the length directives of a transform spec.
var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one column of a row based listing. Key is the dot path into the
// row's JSON object, OutputKey the column title.
type Attr struct {
	Key string `yaml:"key" json:"Key"`
	// Include is false for attrs only used for filtering and sorting.
	Include       bool   `yaml:"include" json:"Include"`
	OutputKey     string `yaml:"outputKey" json:"OutputKey"`
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Only string values are transformed.
//
// Spec letters: t converts an RFC3339 time to local time, T to a relative
// "3 hours ago" form, l and u change case (the last one wins) and an integer
// truncates to that length. A negative length elides the middle instead.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok || a.TransformSpec == "" {
		log.Tracef("untransformed: value=%v", value)
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		result = transformTime(result, strings.Contains(a.TransformSpec, "T"))
	}

	result = transformCase(result, a.TransformSpec)
	result = transformLength(result, a.TransformSpec)

	return result
}

func transformTime(value string, relative bool) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}

	local := t.In(time.Now().Location())
	if relative {
		value = humanize.Time(local)
		log.Tracef("time ago: result=%s", value)
		return value
	}

	value = local.Format("2006-01-02T15:04:05MST")
	log.Tracef("time local: result=%s", value)
	return value
}

// transformCase honors whichever case letter appears last so an attr's own
// spec overrides a global one prepended to it.
func transformCase(value string, spec string) string {
	lastL := strings.LastIndexAny(spec, "lL")
	lastU := strings.LastIndexAny(spec, "uU")

	switch {
	case lastL > lastU:
		return strings.ToLower(value)
	case lastU > lastL:
		return strings.ToUpper(value)
	}
	return value
}

func transformLength(value string, spec string) string {
	match := lengthRegex.FindAllString(spec, -1)
	if len(match) == 0 {
		return value
	}

	l, err := strconv.Atoi(match[len(match)-1])
	if err != nil || l == 0 {
		return value
	}

	runes := []rune(value)
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if len(runes) <= abs {
		return value
	}

	if l > 0 {
		log.Tracef("length trunc: len=%d", l)
		return string(runes[:l])
	}

	side := abs/2 - 1
	if side < 1 {
		side = 1
	}
	log.Tracef("length middle: len=%d", abs)
	return string(runes[:side]) + ".." + string(runes[len(runes)-side:])
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Defaults returns an AttrList of included attrs, one per key, titled by the
// key itself.
func Defaults(keys ...string) AttrList {
	list := make(AttrList, 0, len(keys))
	for _, k := range keys {
		list = append(list, Attr{Key: k, OutputKey: k, Include: true})
	}
	return list
}

// Set parses a --attrs value and merges each spec into the list.
//
// A spec is key[:title[:transform]]. A leading ! keeps the attr for filtering
// and sorting but hides the column. The key * carries a transform spec applied
// to every attr (see SetGlobalTransformSpec). The title defaults to the last
// segment of the key. A spec naming an attr already in the list updates it in
// place.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		attr.Key = strings.TrimPrefix(attr.Key, ".")
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec: %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		default:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: key=%s output=%s include=%v transform=%s",
			attr.Key, attr.OutputKey, attr.Include, attr.TransformSpec)

		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the transform spec of the * attr, if any,
// to every attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}

	if spec == "" {
		log.Debugf("no global spec")
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global spec prepended: spec=%s", spec)

	return nil
}

// Included returns the attrs that render as columns, in order.
func (a AttrList) Included() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// String returns the list in --attrs form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
