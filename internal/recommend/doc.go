// Package recommend provides the recommendation scorer for StayKit Core.
//
// Given an immutable property profile (Context) and the product
// catalogue, the scorer ranks products the operator has not yet selected
// and annotates each with a strength label and human-readable reasons.
//
// # Scoring model
//
// Factors, in descending importance:
//
//  1. Filling a category gap among the matched template's essential
//     entries (large positive weight)
//  2. Overlap between the product's feature tags and the context
//     priorities
//  3. Fit within remaining budget headroom; over-budget candidates are
//     down-weighted, never excluded
//  4. A small nudge favouring cheaper candidates
//
// The relative ordering of these factors is the contract; the exact
// weights are tunable constants in scorer.go.
//
// # Determinism
//
// Output ordering is stable for identical inputs: score descending, ties
// broken by product ID ascending. Tests can assert exact sequences.
//
// # Purity
//
// Recommend never mutates its inputs, holds no state between calls, and
// never returns an error; an empty pool yields an empty slice.
package recommend
