/*
Lrviz computes the LR(1) canonical collection, ACTION/GOTO tables, and a
step-by-step parse trace for a grammar given as text.

It reads a grammar file, builds the augmented grammar and its canonical
LR(1) automaton, and — if the grammar is conflict-free — parses a sentence
against the resulting table, printing the shift-reduce trace and the
resulting AST. If the grammar has conflicts, lrviz refuses to parse: each
parse attempt fails with the number of conflicts, and --show-table lists
them.

Usage:

	lrviz [flags]

The flags are:

	-g, --grammar FILE
		Grammar text file to read. Required, also with --interactive.

	-i, --input STRING
		Sentence to parse. If omitted, one line is read from stdin.

	-I, --interactive
		Open a readline-backed REPL: each entered line is tokenized, parsed,
		and its trace/AST rendered before prompting again.

	-c, --config FILE
		Optional TOML config file providing defaults for --grammar,
		--show-table and --width.

	-t, --show-table
		Print the ACTION/GOTO export views before the trace.

	-w, --width INT
		Table rendering width. Defaults to 100.

	-v, --verbose
		Enable diagnostic logging to stderr.
*/
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitGrammarError
	ExitParseError
)

var (
	returnCode = ExitSuccess

	flagGrammar     = pflag.StringP("grammar", "g", "", "Grammar text file to read")
	flagInput       = pflag.StringP("input", "i", "", "Sentence to parse; reads a line from stdin if empty")
	flagInteractive = pflag.BoolP("interactive", "I", false, "Open a readline REPL instead of a single parse")
	flagConfig      = pflag.StringP("config", "c", "", "Optional TOML config file of flag defaults")
	flagShowTable   = pflag.BoolP("show-table", "t", false, "Print the ACTION/GOTO tables before the trace")
	flagWidth       = pflag.IntP("width", "w", 100, "Table rendering width")
	flagVerbose     = pflag.BoolP("verbose", "v", false, "Enable diagnostic logging")

	logger = log.New(os.Stderr, "lrviz: ", 0)
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}
	cfg.applyDefaults()

	logf := func(format string, args ...interface{}) {
		if *flagVerbose {
			logger.Printf(format, args...)
		}
	}

	if *flagGrammar == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --grammar is required")
		returnCode = ExitUsageError
		return
	}

	sess, err := newSession(*flagGrammar, *flagWidth, logf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}

	if *flagShowTable {
		sess.printTables(os.Stdout)
	}

	if *flagInteractive {
		if err := runREPL(sess); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitParseError
		}
		return
	}

	input := *flagInput
	if input == "" {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			input = scanner.Text()
		}
	}

	if err := sess.runOnce(os.Stdout, input); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
	}
}
