package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/rosed"

	"github.com/lkndy/lr1-visualizer/internal/automaton"
	"github.com/lkndy/lr1-visualizer/internal/engine"
	"github.com/lkndy/lr1-visualizer/internal/grammar"
	"github.com/lkndy/lr1-visualizer/internal/gtext"
	"github.com/lkndy/lr1-visualizer/internal/table"
	"github.com/lkndy/lr1-visualizer/internal/token"
)

// session holds one grammar's fully built pipeline: grammar, automaton,
// table, and (if the table is conflict-free) an engine ready to parse.
type session struct {
	grammar   *grammar.Grammar
	automaton *automaton.Automaton
	table     *table.Table
	engine    *engine.Engine // nil if the table has conflicts

	width int
	logf  func(format string, args ...interface{})
}

// newSession reads grammarPath, parses it with gtext, and runs it through
// automaton.Build and table.Build. It does not fail if the resulting table
// has conflicts — that is reported by printTables/runOnce instead, so a
// caller can still inspect the conflicting table (spec §7: grammar/table
// construction never panic).
func newSession(grammarPath string, width int, logf func(string, ...interface{})) (*session, error) {
	src, err := os.ReadFile(grammarPath)
	if err != nil {
		return nil, fmt.Errorf("reading grammar file: %w", err)
	}

	prods, start, err := gtext.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing grammar text: %w", err)
	}

	g, err := grammar.New(prods, start)
	if err != nil {
		return nil, fmt.Errorf("building grammar: %w", err)
	}
	logf("grammar built: %d productions, %d terminals, %d non-terminals",
		len(g.Productions), len(g.Terminals()), len(g.NonTerminals()))
	if len(g.Unreachable) > 0 {
		logf("unreachable non-terminals: %v", g.Unreachable)
	}

	a, err := automaton.Build(context.Background(), g)
	if err != nil {
		return nil, fmt.Errorf("building automaton: %w", err)
	}
	logf("automaton built: %d states, classification %q", len(a.States), a.Classification())

	t := table.Build(a)

	sess := &session{grammar: g, automaton: a, table: t, width: width, logf: logf}

	if t.Valid() {
		eng, err := engine.New(g, t)
		if err != nil {
			return nil, err
		}
		sess.engine = eng
	}

	return sess, nil
}

// printTables renders the ACTION/GOTO export views with rosed, the same
// fixed-width tabular approach the teacher's grammar-table String() methods
// use (internal/tunascript/parser.go).
func (s *session) printTables(w io.Writer) {
	av := s.table.ActionView()
	data := [][]string{av.Header}
	data = append(data, av.Rows...)
	fmt.Fprintln(w, rosed.Edit("").
		InsertTableOpts(0, data, s.width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String())

	gv := s.table.GotoView()
	data = [][]string{gv.Header}
	data = append(data, gv.Rows...)
	fmt.Fprintln(w, rosed.Edit("").
		InsertTableOpts(0, data, s.width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String())

	if !s.table.Valid() {
		fmt.Fprintf(w, "grammar is %s; %d conflict(s):\n", s.automaton.Classification(), len(s.table.Conflicts))
		for _, c := range s.table.Conflicts {
			fmt.Fprintf(w, "  state %d, symbol %q: %s (kept %s, attempted %s)\n",
				c.State, c.Symbol, c.Kind, c.Kept.Cell(), c.Attempted.Cell())
		}
	}
}

// runOnce tokenizes input, parses it, and renders the trace and AST.
func (s *session) runOnce(w io.Writer, input string) error {
	if s.engine == nil {
		return fmt.Errorf("grammar has conflicts; refusing to parse (%d conflicts)", len(s.table.Conflicts))
	}

	tokens := token.Tokenize(input)
	result := s.engine.Parse(context.Background(), tokens)

	for _, step := range result.Steps {
		fmt.Fprintf(w, "[%d] %s\n", step.StepNumber, step.Explanation)
	}

	if result.Accepted {
		fmt.Fprintln(w, "ACCEPTED")
		fmt.Fprintln(w, result.Tree.String())
	} else {
		fmt.Fprintf(w, "REJECTED: %v\n", result.Err)
	}

	return nil
}
