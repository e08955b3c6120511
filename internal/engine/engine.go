// Package engine is the ParserEngine: the shift-reduce driver that consumes
// a tokenized sentence against a conflict-free table.Table, emitting a
// complete step-by-step trace and a parent-linked ast.Tree (spec §4.5).
package engine

import (
	"context"
	"fmt"

	"github.com/lkndy/lr1-visualizer/internal/ast"
	"github.com/lkndy/lr1-visualizer/internal/grammar"
	"github.com/lkndy/lr1-visualizer/internal/lrerr"
	"github.com/lkndy/lr1-visualizer/internal/table"
	"github.com/lkndy/lr1-visualizer/internal/util"
)

// bottomSymbol is the sentinel parser-stack symbol for the initial frame,
// never matched by any grammar symbol (spec §4.5 "State").
const bottomSymbol = ""

// StackEntry is one (state, symbol) frame of the parser stack.
type StackEntry struct {
	State  int
	Symbol string
}

// StepKind classifies a recorded step.
type StepKind int

const (
	StepShift StepKind = iota
	StepReduce
	StepAccept
	StepError
)

func (k StepKind) String() string {
	switch k {
	case StepShift:
		return "shift"
	case StepReduce:
		return "reduce"
	case StepAccept:
		return "accept"
	case StepError:
		return "error"
	default:
		return "unknown"
	}
}

// Step records one parser action, taken *before* the action mutates parser
// state: the pre-step stack, the cursor, the current lookahead token, the
// action, a human-readable explanation, and the ids of any AST nodes
// created during this step (spec §4.5 "Trace semantics").
type Step struct {
	StepNumber      int
	Stack           []StackEntry
	Cursor          int
	CurrentToken    string
	Kind            StepKind
	ShiftTo         int // valid when Kind == StepShift
	ReduceProd      int // valid when Kind == StepReduce
	Explanation     string
	ASTNodesCreated []string
}

// Result is the outcome of one parse: the full trace, whether the input
// was accepted, the assembled AST (built on accept and on a missing-GOTO
// error; the zero value when the parse stops on no action, the step limit,
// or cancellation), and the terminal error, if any.
type Result struct {
	Steps    []Step
	Accepted bool
	Tree     ast.Tree
	Err      error
}

// Engine drives conflict-free tables. Construction fails if t has
// conflicts (spec §4.5 "Precondition").
type Engine struct {
	grammar *grammar.Grammar
	table   *table.Table
}

// New returns an Engine for t, or an lrerr.ErrHasConflicts error if t is
// not a valid table.
func New(g *grammar.Grammar, t *table.Table) (*Engine, error) {
	if !t.Valid() {
		return nil, lrerr.New(lrerr.ErrHasConflicts,
			fmt.Sprintf("table has %d conflict(s); refusing to build an engine", len(t.Conflicts)))
	}
	return &Engine{grammar: g, table: t}, nil
}

// Parse runs the shift-reduce driver over tokens (which must already end
// with the "$" end marker — see internal/token) and returns the full trace
// plus AST. ctx is checked once per step; a cancelled context aborts the
// parse with lrerr.ErrCancelled (spec §5).
func (e *Engine) Parse(ctx context.Context, tokens []string) Result {
	var stack util.Stack[StackEntry]
	stack.Push(StackEntry{State: 0, Symbol: bottomSymbol})

	var astStack util.Stack[string]
	builder := ast.NewBuilder()

	cursor := 0
	stepNum := 0
	limit := 10 * len(tokens)

	var steps []Step

	for {
		select {
		case <-ctx.Done():
			err := lrerr.New(lrerr.ErrCancelled, "parse cancelled: "+ctx.Err().Error())
			steps = append(steps, Step{
				StepNumber:   stepNum,
				Stack:        stack.Snapshot(),
				Cursor:       cursor,
				CurrentToken: currentToken(tokens, cursor),
				Kind:         StepError,
				Explanation:  err.Error(),
			})
			return Result{Steps: steps, Accepted: false, Err: err}
		default:
		}

		if stepNum >= limit {
			err := lrerr.New(lrerr.ErrStepLimitExceeded,
				fmt.Sprintf("exceeded step limit of %d without accepting or erroring", limit))
			steps = append(steps, Step{
				StepNumber:   stepNum,
				Stack:        stack.Snapshot(),
				Cursor:       cursor,
				CurrentToken: currentToken(tokens, cursor),
				Kind:         StepError,
				Explanation:  err.Error(),
			})
			return Result{Steps: steps, Accepted: false, Err: err}
		}

		s := stack.Peek().State
		a := currentToken(tokens, cursor)

		act, ok := e.table.ActionAt(s, a)
		if !ok {
			err := lrerr.New(lrerr.ErrNoAction,
				fmt.Sprintf("no action defined for state %d on lookahead %q", s, a))
			steps = append(steps, Step{
				StepNumber:   stepNum,
				Stack:        stack.Snapshot(),
				Cursor:       cursor,
				CurrentToken: a,
				Kind:         StepError,
				Explanation:  err.Error(),
			})
			return Result{Steps: steps, Accepted: false, Err: err}
		}

		preStack := stack.Snapshot()

		switch act.Kind {
		case table.Shift:
			nodeID := builder.NewTerminal(a)
			stack.Push(StackEntry{State: act.Target, Symbol: a})
			astStack.Push(nodeID)
			steps = append(steps, Step{
				StepNumber:      stepNum,
				Stack:           preStack,
				Cursor:          cursor,
				CurrentToken:    a,
				Kind:            StepShift,
				ShiftTo:         act.Target,
				Explanation:     fmt.Sprintf("shift %q, goto state %d", a, act.Target),
				ASTNodesCreated: []string{nodeID},
			})
			cursor++

		case table.Reduce:
			prod := e.grammar.Productions[act.Target]
			k := len(prod.RHS)
			stack.PopN(k)
			children := astStack.PopN(k)

			nodeID := builder.NewNonTerminal(prod.LHS.Name, prod.Index, children)

			s2 := stack.Peek().State
			s3, ok := e.table.GotoAt(s2, prod.LHS.Name)
			if !ok {
				err := lrerr.New(lrerr.ErrMissingGoto,
					fmt.Sprintf("no goto defined for state %d on non-terminal %q", s2, prod.LHS.Name))
				steps = append(steps, Step{
					StepNumber:      stepNum,
					Stack:           preStack,
					Cursor:          cursor,
					CurrentToken:    a,
					Kind:            StepError,
					Explanation:     err.Error(),
					ASTNodesCreated: []string{nodeID},
				})
				return Result{Steps: steps, Accepted: false, Tree: builder.Build(e.grammar.Start.Name), Err: err}
			}

			stack.Push(StackEntry{State: s3, Symbol: prod.LHS.Name})
			astStack.Push(nodeID)

			steps = append(steps, Step{
				StepNumber:      stepNum,
				Stack:           preStack,
				Cursor:          cursor,
				CurrentToken:    a,
				Kind:            StepReduce,
				ReduceProd:      prod.Index,
				Explanation:     fmt.Sprintf("reduce by %s, goto state %d", prod.String(), s3),
				ASTNodesCreated: []string{nodeID},
			})

		case table.Accept:
			steps = append(steps, Step{
				StepNumber:   stepNum,
				Stack:        preStack,
				Cursor:       cursor,
				CurrentToken: a,
				Kind:         StepAccept,
				Explanation:  "accept",
			})
			return Result{Steps: steps, Accepted: true, Tree: builder.Build(e.grammar.Start.Name)}
		}

		stepNum++
	}
}

func currentToken(tokens []string, cursor int) string {
	if cursor < len(tokens) {
		return tokens[cursor]
	}
	return ""
}
