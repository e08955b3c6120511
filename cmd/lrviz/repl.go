package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// runREPL opens a readline-backed loop: each entered line is tokenized,
// parsed against sess, and its trace/AST rendered before prompting again.
// Grounded on internal/input.InteractiveCommandReader's readline.NewEx
// usage. Exits cleanly on EOF (Ctrl-D), an interrupt (Ctrl-C), or a
// "quit"/"exit" line; empty lines are skipped.
func runREPL(sess *session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "lrviz> ",
	})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if err := sess.runOnce(os.Stdout, line); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
	}
}
