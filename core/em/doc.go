// Package em estimates the biases of two coins from experiments whose coin
// identity is hidden, using Expectation-Maximization over a two-component
// Bernoulli mixture. It never imports app, writers, cli, or telemetry; keep it
// numeric-only.
//
// External outputs must not depend on the types here; use pkg/api for stable
// wire types.
package em
