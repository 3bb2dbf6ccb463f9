// Package rpn models the postfix (reverse Polish) token sequence produced by
// the parser and consumed by the evaluator and formatter. The parser emits
// the sequence directly; there is no intermediate syntax tree anywhere in
// the pipeline.
package rpn
