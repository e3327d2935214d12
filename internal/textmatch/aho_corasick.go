// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

// Package textmatch provides multi-pattern substring matching for keyword
// rule tables.
//
// An Automaton is built once from a fixed pattern set and is immutable
// afterwards, so a single instance can be shared by concurrent filters
// without locking. Matching is case-insensitive and runs in
// O(len(text) + matches) regardless of how many keywords are registered.
package textmatch

import (
	"strings"
)

// Pattern is a keyword with an attached payload.
type Pattern[T any] struct {
	Text string
	Data T
}

// Match is one occurrence of a pattern in searched text.
type Match[T any] struct {
	Pattern  string
	Data     T
	Position int // byte offset of the match start
}

// Automaton implements Aho-Corasick matching over a fixed pattern set.
//
//	ac := textmatch.New([]textmatch.Pattern[string]{
//	    {Text: "blazer", Data: "formal"},
//	    {Text: "jogger", Data: "athletic"},
//	})
//	ac.Search("Slim jogger pants") // [{Pattern: "jogger", Data: "athletic", Position: 5}]
type Automaton[T any] struct {
	root     *node
	patterns []Pattern[T]
}

type node struct {
	children map[rune]*node
	failure  *node
	output   []int // indices into patterns ending here, including via failure links
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// New builds an automaton. Empty patterns are ignored; patterns are
// lower-cased.
func New[T any](patterns []Pattern[T]) *Automaton[T] {
	ac := &Automaton[T]{root: newNode()}
	for _, p := range patterns {
		text := strings.ToLower(strings.TrimSpace(p.Text))
		if text == "" {
			continue
		}
		ac.patterns = append(ac.patterns, Pattern[T]{Text: text, Data: p.Data})
		ac.insert(len(ac.patterns)-1, text)
	}
	ac.buildFailureLinks()
	return ac
}

// FromKeywords builds an automaton where every keyword carries the same data.
func FromKeywords[T any](keywords []string, data T) *Automaton[T] {
	patterns := make([]Pattern[T], 0, len(keywords))
	for _, k := range keywords {
		patterns = append(patterns, Pattern[T]{Text: k, Data: data})
	}
	return New(patterns)
}

func (ac *Automaton[T]) insert(index int, text string) {
	n := ac.root
	for _, ch := range text {
		child := n.children[ch]
		if child == nil {
			child = newNode()
			n.children[ch] = child
		}
		n = child
	}
	n.output = append(n.output, index)
}

// buildFailureLinks wires failure transitions breadth first.
func (ac *Automaton[T]) buildFailureLinks() {
	queue := make([]*node, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// scan walks text and calls fn for each match until fn returns false.
func (ac *Automaton[T]) scan(text string, fn func(Match[T]) bool) {
	if len(ac.patterns) == 0 {
		return
	}
	n := ac.root
	for i, ch := range strings.ToLower(text) {
		for n != nil && n.children[ch] == nil {
			n = n.failure
		}
		if n == nil {
			n = ac.root
			continue
		}
		n = n.children[ch]

		for _, idx := range n.output {
			p := ac.patterns[idx]
			m := Match[T]{Pattern: p.Text, Data: p.Data, Position: i + len(string(ch)) - len(p.Text)}
			if !fn(m) {
				return
			}
		}
	}
}

// Search returns every match in text, in order of match end position.
func (ac *Automaton[T]) Search(text string) []Match[T] {
	var matches []Match[T]
	ac.scan(text, func(m Match[T]) bool {
		matches = append(matches, m)
		return true
	})
	return matches
}

// First returns the first match in text.
func (ac *Automaton[T]) First(text string) (Match[T], bool) {
	var (
		found Match[T]
		ok    bool
	)
	ac.scan(text, func(m Match[T]) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// Contains reports whether any pattern occurs in text.
func (ac *Automaton[T]) Contains(text string) bool {
	_, ok := ac.First(text)
	return ok
}

// Len returns the number of registered patterns.
func (ac *Automaton[T]) Len() int {
	return len(ac.patterns)
}
