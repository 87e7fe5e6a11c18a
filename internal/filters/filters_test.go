// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/wbctl/internal/attrs"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testBuildFiltersCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
}

type testCheckStringOperandCase struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Filter Filter `yaml:"filter"`
	Want   bool   `yaml:"want"`
}

type testCheckNumericOperandCase struct {
	Name   string  `yaml:"name"`
	Value  float64 `yaml:"value"`
	Filter Filter  `yaml:"filter"`
	Want   bool    `yaml:"want"`
}

type testCheckContainsOperandCase struct {
	Name   string      `yaml:"name"`
	Value  interface{} `yaml:"value"`
	Filter Filter      `yaml:"filter"`
	Want   bool        `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestBuildFilters(t *testing.T) {
	var tests []testBuildFiltersCase
	require.NoError(t, loadTestData("build_filters.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if tt.Delimiter != "" {
				t.Setenv("WBCTL_FILTER_DELIM", tt.Delimiter)
			}

			got := BuildFilters(tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, filter := range tt.Want {
				assert.Equal(t, filter.Key, got[i].Key)
				assert.Equal(t, filter.Operand, got[i].Operand)
				assert.Equal(t, filter.Value, got[i].Value)
				assert.Equal(t, filter.Negate, got[i].Negate)
			}
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	var tests []testCheckStringOperandCase
	require.NoError(t, loadTestData("check_string_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkStringOperand(tt.Value, tt.Filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	var tests []testCheckNumericOperandCase
	require.NoError(t, loadTestData("check_numeric_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkNumericOperand(tt.Value, tt.Filter))
		})
	}
}

func TestCheckContainsOperand(t *testing.T) {
	var tests []testCheckContainsOperandCase
	require.NoError(t, loadTestData("check_contains_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkContainsOperand(tt.Value, tt.Filter))
		})
	}
}

const rows = `[
	{"sheetId":"sheet-1","sheet":"Data","cell":"A1","row":0,"col":0,"type":"modified","old":{"value":1},"new":{"value":2},"styleKeys":[]},
	{"sheetId":"sheet-1","sheet":"Data","cell":"B12","row":11,"col":1,"type":"added","new":{"value":"draft"}},
	{"sheetId":"sheet-2","sheet":"Summary","cell":"C4","row":3,"col":2,"type":"deleted","old":{"value":"x"},"styleKeys":["fill"]},
	{"sheetId":"sheet-3","sheet":"Data 2","scope":"sheet","type":"added"}
]`

func TestFilterDataset(t *testing.T) {
	attrList := attrs.AttrList{
		{Key: "sheet", OutputKey: "sheet", Include: true},
		{Key: "cell", OutputKey: "cell", Include: true},
		{Key: "type", OutputKey: "type", Include: true},
		{Key: "new.value", OutputKey: "after", Include: true},
	}

	tests := []struct {
		name      string
		spec      string
		wantCells []interface{}
	}{
		{name: "none", spec: "", wantCells: []interface{}{"A1", "B12", "C4", nil}},
		{name: "type", spec: "type=added", wantCells: []interface{}{"B12", nil}},
		{name: "sheet_prefix", spec: "sheet^Data", wantCells: []interface{}{"A1", "B12", nil}},
		{name: "row_numeric", spec: "row>10", wantCells: []interface{}{"B12"}},
		{name: "combined", spec: "type=added,sheet^Data,row>10", wantCells: []interface{}{"B12"}},
		{name: "attr_title", spec: "after@draft", wantCells: []interface{}{"B12"}},
		{name: "dot_path", spec: "old.value=1", wantCells: []interface{}{"A1"}},
		{name: "negated_missing", spec: "scope!=sheet", wantCells: []interface{}{"A1", "B12", "C4"}},
		{name: "array_member", spec: "styleKeys@fill", wantCells: []interface{}{"C4"}},
		{name: "nothing", spec: "type=renamed", wantCells: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(gjson.Parse(rows), attrList, tt.spec)
			require.Len(t, got, len(tt.wantCells))
			for i, want := range tt.wantCells {
				assert.Equal(t, want, got[i]["cell"])
			}
		})
	}
}

func TestFilterDataset_Values(t *testing.T) {
	attrList := attrs.AttrList{
		{Key: "row", OutputKey: "row", Include: true},
		{Key: "new.value", OutputKey: "after", Include: true},
		{Key: "*", OutputKey: "*", TransformSpec: "u"},
	}

	got := FilterDataset(gjson.Parse(rows), attrList, "cell=A1")
	require.Len(t, got, 1)
	assert.Equal(t, float64(0), got[0]["row"])
	assert.Equal(t, float64(2), got[0]["after"])
	assert.NotContains(t, got[0], "*")
}
