// Package token defines the lexical token model for arithmetic expressions.
//
// The alphabet is deliberately small: digits and dots form Number lexemes,
// the five operators + - * / ^ and the two parentheses are single-character
// tokens, and everything else is Invalid. A token stream always ends with
// exactly one EOF token and contains EOF nowhere else.
package token
