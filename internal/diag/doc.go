// Package diag defines the diagnostic model shared by all pipeline phases.
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, parser, and evaluator.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt, orchestration in internal/driver.
//
// Diagnostic is the central record: Severity (Info/Warning/Error), a banded
// numeric Code with a stable string form (LEX/SYN/SEM/IO), a short message,
// the primary source.Span, and optional notes. The bands are part of the
// public contract: a caller distinguishes a bad character, a grammar
// mismatch, and a malformed numeric literal by the code band alone.
//
// Phases emit through a Reporter so that emission stays decoupled from
// storage; BagReporter aggregates into a Bag, which supports sorting and
// deduplication for deterministic CLI output.
package diag
