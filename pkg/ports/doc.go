// Package ports defines the interfaces between the engine core and its
// adapters: preset sources (registry input), state stores (restart
// persistence), and snapshot publishers (render consumption).
package ports
