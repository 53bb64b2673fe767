// Package observability turns engine lifecycle hooks into Prometheus
// metrics and lets hosts stack several hook sets onto one engine.
package observability
