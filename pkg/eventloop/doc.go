// Package eventloop provides the single-threaded host the contact form runs
// on. A Loop owns one goroutine that executes posted callbacks in order, and
// its timers post their callbacks back into the same queue, so form handlers,
// draft status updates and toast lifecycles never interleave mid-execution.
//
// Manual implements the same Clock contract with a virtual clock advanced
// explicitly by tests.
package eventloop
