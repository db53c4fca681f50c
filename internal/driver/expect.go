package driver

import (
	"strings"

	"github.com/vivax3794/viv-script-blog/internal/token"
)

// Expectation is what an integration program declares about itself through
// comments:
//
//	# expect: 7
//	# expect: true
//	# expect-abort
//	# expect-error: SEM3001
//
// Each `expect:` line is one line of stdout, in order.
type Expectation struct {
	Output []string
	Abort  bool
	// ErrorCode, when set, means compilation must fail with this code.
	ErrorCode string
}

// Stdout is the exact text the program must print.
func (e Expectation) Stdout() string {
	if len(e.Output) == 0 {
		return ""
	}
	return strings.Join(e.Output, "\n") + "\n"
}

// ExpectationsFromTokens reads directives from comment trivia.
func ExpectationsFromTokens(toks []token.Token) Expectation {
	var exp Expectation
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaLineComment {
				exp.apply(tr.Text)
			}
		}
	}
	return exp
}

// ExpectationsFromText scans raw lines; used when the file does not even
// tokenize.
func ExpectationsFromText(content []byte) Expectation {
	var exp Expectation
	for line := range strings.SplitSeq(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			exp.apply(line)
		}
	}
	return exp
}

func (e *Expectation) apply(comment string) {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	switch {
	case strings.HasPrefix(body, "expect:"):
		e.Output = append(e.Output, strings.TrimSpace(strings.TrimPrefix(body, "expect:")))
	case body == "expect-abort":
		e.Abort = true
	case strings.HasPrefix(body, "expect-error:"):
		e.ErrorCode = strings.TrimSpace(strings.TrimPrefix(body, "expect-error:"))
	}
}
