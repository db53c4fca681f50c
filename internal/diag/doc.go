// Package diag is the shared error vocabulary of the viv pipeline.
//
// The core stages each stop at their first error and return it as a typed
// value (*lexer.TokenizerError, *parser.ParsingError, *sema.TypeError).
// The pipeline wraps that value in a *StageError naming the stage that
// failed; FromError turns any of them into a Diagnostic with a stable code
// (LEX1001, SYN2001, SEM3001) so renderers in internal/diagfmt and the test
// runner in internal/driver never type-switch on producer packages.
//
// Package diag does no IO and no coloring.
package diag
