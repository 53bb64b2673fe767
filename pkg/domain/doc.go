// Package domain contains the core types of the expression engine: the
// recursive parameter tree, expression presets with their motion rules,
// frame snapshots, sentinel errors, and lifecycle events.
//
// The parameter tree is a closed tagged variant (Number | Text | Tree).
// All tree operations are explicit recursive functions that reject shape
// mismatches per leaf instead of coercing, so a malformed channel can
// never corrupt its siblings.
package domain
