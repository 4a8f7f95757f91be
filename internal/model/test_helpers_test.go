// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

// jsonArrayParseTest defines a test case for parsing JSON arrays.
type jsonArrayParseTest struct {
	name  string
	input string
	want  []string
}

// standardJSONArrayParseTests returns common test cases for JSON array parsing.
func standardJSONArrayParseTests(singleItem, multiItem1, multiItem2, multiItem3 string) []jsonArrayParseTest {
	return []jsonArrayParseTest{
		{name: "empty string", input: "", want: []string{}},
		{name: "empty array", input: "[]", want: []string{}},
		{name: "single item", input: `["` + singleItem + `"]`, want: []string{singleItem}},
		{name: "multiple items", input: `["` + multiItem1 + `","` + multiItem2 + `","` + multiItem3 + `"]`, want: []string{multiItem1, multiItem2, multiItem3}},
	}
}

// assertStringSliceEqual asserts that two string slices are equal.
func assertStringSliceEqual(t *testing.T, testName string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %v, want %v", testName, got, want)
		return
	}
	for i, v := range got {
		if v != want[i] {
			t.Errorf("%s[%d] = %q, want %q", testName, i, v, want[i])
		}
	}
}

// assertArticles asserts that got holds exactly the articles in want, in order.
func assertArticles(t *testing.T, testName string, got, want []*Article) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %d articles, want %d", testName, len(got), len(want))
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %p, want %p", testName, i, got[i], want[i])
		}
	}
}
