// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"status", "stauts", 2},
		{"workers", "wokers", 1},
		{"función", "funcion", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"_"+test.b, func(t *testing.T) {
			if got := levenshtein(test.a, test.b); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if reverse := levenshtein(test.b, test.a); reverse != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, reverse, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "status"},
		{Name: "workers"},
		{Name: "version"},
		{Name: "maxqueue"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"stats", "status"},
		{"wrkers", "workers"},
		{"maxque", "maxqueue"},
		{"zzzzzzzz", ""},
		{"max", "maxqueue"},
		{"STATUS", "status"},
		{"ver", "version"},
		{"x", ""},
		{"st", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.String("host", "", "")
		flagSet.Int("port", 0, "")
		flagSet.BoolP("json", "j", false, "")
		return flagSet
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--hots", "x"}, "--host"},
		{[]string{"--host=x", "--prot=1"}, "--port"},
		{[]string{"--jsno"}, "--json"},
		{[]string{"--", "--hots"}, ""},
		{[]string{"--completely-unrelated"}, ""},
		{[]string{"-j", "--jso"}, "--json"},
		{[]string{"-x"}, ""},
		{[]string{"positional", "--Host"}, "--host"},
		{[]string{"--prt=1"}, "--port"},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, newFlagSet()); got != test.want {
			t.Errorf("suggestFlag(%q) = %q, want %q", test.args, got, test.want)
		}
	}
}
