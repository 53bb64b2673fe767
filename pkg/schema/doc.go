// Package schema defines the on-disk expression catalog format.
//
// A catalog is a YAML document listing presets: the resting parameter
// tree, the motion rules, and the latched color for each expression.
// Parsing produces plain document types; Presets converts them into
// validated domain presets.
//
// Minimal catalog:
//
//	version: 1
//	presets:
//	  - id: happy
//	    label: Happy
//	    color: "#FFFF00"
//	    base:
//	      eyes:
//	        left: { openness: 0.8 }
//	        right: { openness: 0.8 }
//	      mouth: { curve: 8 }
//	    motion:
//	      mouth:
//	        curve: { freq: 1, amp: 5 }
//	      shared_jitter: { amp: 1.2 }
//
// All parse and shape failures are collected and reported together, so
// a broken catalog surfaces every problem in one pass.
package schema
