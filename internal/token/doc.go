// Package token defines lexical token kinds and trivia for the viv compiler.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Comments ('#' to end of line) are carried as leading Trivia of the next
//     token and never appear in the main token stream.
//   - The stream always ends with exactly one EOF token.
package token
