// Package estimate runs one EM estimation as an observable unit of work: it
// assigns a run ID, wraps the core loop in a span, records metrics, logs
// progress, and fans trace records out to a sink.
//
// It never imports cli, app, or writers; callers decide how results are shown.
package estimate
