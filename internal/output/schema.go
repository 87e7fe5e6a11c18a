// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// maxSchemaDepth limits how far nested row structs are walked.
const maxSchemaDepth = 1

// DumpSchema writes the sorted dot paths a row of type typ offers to --attrs,
// --filter and --sort. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, `Row attributes available to the --attrs, --filter and --sort flags.`)
	fmt.Fprintln(w, "")

	paths := schemaPaths("", typ, 0)
	if len(paths) == 0 {
		log.Debugf("no json tags found for type: %s", typ.Name())
		return
	}
	sort.Strings(paths)

	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}

// schemaPaths walks the json tags of a struct, descending into struct and
// struct pointer fields.
func schemaPaths(holder string, typ reflect.Type, depth int) []string {
	for typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var paths []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tag, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if holder != "" {
			name = holder + "." + name
		}
		paths = append(paths, name)

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth && ft.PkgPath() == typ.PkgPath() {
			paths = append(paths, schemaPaths(name, ft, depth+1)...)
		}
	}

	return paths
}
