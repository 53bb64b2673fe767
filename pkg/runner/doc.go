// Package runner drives the synthesis loop: it ticks the engine at a
// fixed frame rate and fans each composited snapshot out to the
// registered publishers.
//
// The loop is deliberately dumb. All animation logic lives in the
// engine; the runner only owns cadence and delivery. A publisher that
// fails logs and drops the frame; it never stalls the loop.
package runner
