// Package eval is the stack machine of the pipeline: it consumes an
// rpn.Sequence left to right and produces one float64. Numeric literal
// validation happens here, not in the lexer — the pipeline accepts any
// digit/dot run lexically and only this package applies the real float
// grammar via strconv.
package eval
