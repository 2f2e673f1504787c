// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestCommand returns the subcommand name closest to unknown, or "".
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, 0, len(commands))
	for _, command := range commands {
		names = append(names, command.Name)
	}
	return closest(unknown, names)
}

// suggestFlag finds the first flag in args that flagSet does not define
// and returns the closest defined long flag with its "--" prefix, or "".
// Arguments after "--" are positional and never inspected.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var long []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		if len(f.Name) > 1 {
			long = append(long, f.Name)
		}
	})

	for _, arg := range args {
		if arg == "--" {
			return ""
		}
		name, ok := flagName(arg)
		if !ok || defined(flagSet, name) {
			continue
		}
		if match := closest(name, long); match != "" {
			return "--" + match
		}
		return ""
	}
	return ""
}

// flagName strips the dashes and any "=value" from a flag argument.
func flagName(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", false
	}
	name := strings.TrimLeft(arg, "-")
	name, _, _ = strings.Cut(name, "=")
	return name, name != ""
}

func defined(flagSet *pflag.FlagSet, name string) bool {
	if flagSet.Lookup(name) != nil {
		return true
	}
	return len(name) == 1 && flagSet.ShorthandLookup(name) != nil
}

// closest picks the candidate input most likely misspells. A unique
// candidate that input is a prefix of (three characters or more) wins
// outright. Otherwise the nearest candidate by edit distance is taken,
// allowing one edit per two input characters and never more than three.
// Matching ignores case; ties go to the earlier candidate.
func closest(input string, candidates []string) string {
	input = strings.ToLower(input)

	if len(input) >= 3 {
		prefixed := ""
		for _, candidate := range candidates {
			if strings.HasPrefix(strings.ToLower(candidate), input) {
				if prefixed != "" {
					prefixed = ""
					break
				}
				prefixed = candidate
			}
		}
		if prefixed != "" {
			return prefixed
		}
	}

	limit := min(3, len([]rune(input))/2)
	best, bestDistance := "", limit+1
	for _, candidate := range candidates {
		if distance := levenshtein(input, strings.ToLower(candidate)); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}

// levenshtein returns the number of single-rune insertions, deletions
// and substitutions that turn a into b.
func levenshtein(a, b string) int {
	source, target := []rune(a), []rune(b)
	if len(source) > len(target) {
		source, target = target, source
	}

	previous := make([]int, len(source)+1)
	current := make([]int, len(source)+1)
	for i := range previous {
		previous[i] = i
	}
	for j, targetRune := range target {
		current[0] = j + 1
		for i, sourceRune := range source {
			substitution := previous[i]
			if sourceRune != targetRune {
				substitution++
			}
			current[i+1] = min(previous[i+1]+1, current[i]+1, substitution)
		}
		previous, current = current, previous
	}
	return previous[len(source)]
}
