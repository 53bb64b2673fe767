// Package dsl provides a fluent builder for defining expression presets
// in code. The built-in catalog and tests use it instead of hand-writing
// nested tree literals.
package dsl
