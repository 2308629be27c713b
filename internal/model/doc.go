// Package model defines the data structures shared across webwords components.
//
// The types in this package are plain data carriers with no behavior beyond
// small convenience methods. They are produced by the crawler and the word
// aggregator and consumed by the report writers, the history database, and
// the CLI output layer.
package model
