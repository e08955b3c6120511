// Package gtext is a supplemental, explicitly non-core front-end that
// turns grammar text into the structured production list
// internal/grammar.New accepts. It is never imported by the grammar,
// automaton, table, or engine packages — only by cmd/lrviz — keeping the
// core's "accepts only the structured form" contract intact (spec §6;
// SPEC_FULL §11).
package gtext

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lkndy/lr1-visualizer/internal/grammar"
)

// Parse reads grammar text in the form:
//
//	NONTERM -> SYM SYM SYM | SYM | ;
//	NONTERM2 -> SYM ;
//
// Rules are ";"-terminated; alternatives within a rule are "|"-separated.
// A token starting with an uppercase letter is a non-terminal, any other
// token a terminal; "ε" or "epsilon" denotes an empty alternative. The
// first rule's head is taken as the grammar's start symbol. Parse returns
// a production list and start symbol ready for grammar.New.
func Parse(src string) ([]grammar.Production, grammar.Symbol, error) {
	var (
		prods []grammar.Production
		start grammar.Symbol
		seen  bool
	)

	for _, rule := range splitRules(src) {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		head, alts, err := parseRule(rule)
		if err != nil {
			return nil, grammar.Symbol{}, err
		}

		if !seen {
			start = head
			seen = true
		}

		for _, alt := range alts {
			prods = append(prods, grammar.Production{LHS: head, RHS: alt})
		}
	}

	if !seen {
		return nil, grammar.Symbol{}, fmt.Errorf("gtext: no rules found in grammar text")
	}

	return prods, start, nil
}

// splitRules splits on ";" while ignoring a trailing empty segment caused
// by a final terminating ";".
func splitRules(src string) []string {
	parts := strings.Split(src, ";")
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// parseRule parses one "NONTERM -> ALT | ALT | ..." rule.
func parseRule(rule string) (grammar.Symbol, [][]grammar.Symbol, error) {
	sides := strings.SplitN(rule, "->", 2)
	if len(sides) != 2 {
		return grammar.Symbol{}, nil, fmt.Errorf("gtext: malformed rule, missing '->': %q", rule)
	}

	headName := strings.TrimSpace(sides[0])
	if headName == "" {
		return grammar.Symbol{}, nil, fmt.Errorf("gtext: empty non-terminal name in rule: %q", rule)
	}
	if !startsUpper(headName) {
		return grammar.Symbol{}, nil, fmt.Errorf("gtext: rule head %q must be a non-terminal (start with an uppercase letter)", headName)
	}
	head := grammar.NewNonTerminal(headName)

	var alts [][]grammar.Symbol
	for _, altStr := range strings.Split(sides[1], "|") {
		altStr = strings.TrimSpace(altStr)
		fields := strings.Fields(altStr)

		var rhs []grammar.Symbol
		for _, f := range fields {
			if isEpsilonSpelling(f) {
				continue
			}
			if startsUpper(f) {
				rhs = append(rhs, grammar.NewNonTerminal(f))
			} else {
				rhs = append(rhs, grammar.NewTerminal(f))
			}
		}
		alts = append(alts, rhs)
	}

	if len(alts) == 0 {
		return grammar.Symbol{}, nil, fmt.Errorf("gtext: rule %q has no alternatives", rule)
	}

	return head, alts, nil
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func isEpsilonSpelling(s string) bool {
	return s == grammar.EpsilonSymbolName || strings.EqualFold(s, "epsilon")
}
