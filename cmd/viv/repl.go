package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/version"
	"github.com/vivax3794/viv-script-blog/internal/vm"
)

const (
	replPrompt     = "viv> "
	replContPrompt = "...> "
	replHistory    = ".viv_history"
	replFileName   = "<repl>"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive viv-script session on the MIR interpreter",
	Long: `Repl reads statements one at a time and runs them inside an implicit
function body, so earlier let bindings stay visible. Statements that fail
to compile or abort are dropped. Type :quit to leave, :reset to forget
all bindings, :show to print the accumulated program.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().Int("max-steps", 1_000_000, "VM step limit per entry (0 = unlimited)")
}

// replSession re-runs the accepted statements plus the new one each time
// and prints only the output the new statement added.
type replSession struct {
	stmts    []string
	printed  int
	maxSteps int
}

type replResult struct {
	Output  string
	Aborted bool
	// FileSet is set for compile errors so they can be rendered.
	FileSet *source.FileSet
}

var errIncomplete = errors.New("incomplete input")

func (s *replSession) program(extra string) string {
	var b strings.Builder
	b.WriteString("$ {\n")
	for _, stmt := range s.stmts {
		b.WriteString(stmt)
		b.WriteByte('\n')
	}
	if extra != "" {
		b.WriteString(extra)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

// Eval runs input after the accepted statements. errIncomplete means the
// input stops mid-statement and more lines are needed.
func (s *replSession) Eval(ctx context.Context, input string) (replResult, error) {
	src := s.program(input)
	opts := buildpipeline.Options{SkipEmit: true}
	res, err := buildpipeline.Build(ctx, replFileName, []byte(src), opts)
	if err != nil {
		if incomplete(err, src) {
			return replResult{}, errIncomplete
		}
		return replResult{FileSet: res.FileSet}, err
	}

	var out bytes.Buffer
	run, err := buildpipeline.Interpret(ctx, res, vm.Options{Stdout: &out, MaxSteps: s.maxSteps}, opts)
	text := out.String()
	fresh := text
	if len(text) >= s.printed {
		fresh = text[s.printed:]
	}
	if err != nil {
		return replResult{Output: fresh, FileSet: res.FileSet}, err
	}
	if run.Aborted {
		return replResult{Output: fresh, Aborted: true}, nil
	}
	s.stmts = append(s.stmts, input)
	s.printed = len(text)
	return replResult{Output: fresh}, nil
}

func (s *replSession) Reset() {
	s.stmts = nil
	s.printed = 0
}

// incomplete: the parser ran into the closing brace the session wrapped
// the input in.
func incomplete(err error, src string) bool {
	var perr *parser.ParsingError
	if !errors.As(err, &perr) {
		return false
	}
	closing := strings.LastIndexByte(src, '}')
	return closing >= 0 && int(perr.Span.Start) >= closing
}

func runRepl(cmd *cobra.Command, args []string) error {
	maxSteps, _ := cmd.Flags().GetInt("max-steps")
	session := &replSession{maxSteps: maxSteps}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	fmt.Fprintf(out, "%s - type :quit to exit\n", version.Describe(!color.NoColor))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, replHistory)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	red := color.New(color.FgRed).SprintFunc()
	var pending strings.Builder
	for {
		prompt := replPrompt
		if pending.Len() > 0 {
			prompt = replContPrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			pending.Reset()
			continue
		}
		if err != nil {
			return err
		}

		if pending.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case ":quit", ":q":
				return nil
			case ":reset":
				session.Reset()
				continue
			case ":show":
				fmt.Fprint(out, session.program(""))
				continue
			}
		} else {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)

		input := pending.String()
		res, err := session.Eval(cmd.Context(), input)
		if errors.Is(err, errIncomplete) {
			continue
		}
		pending.Reset()
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		fmt.Fprint(out, res.Output)
		switch {
		case err != nil:
			_ = reportError(cmd, err, res.FileSet)
		case res.Aborted:
			fmt.Fprintln(errOut, red("program aborted; statement dropped"))
		}
	}
}
