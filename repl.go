package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/wattle/lib/ast"
	"github.com/vyPal/wattle/lib/compiler"
	"github.com/vyPal/wattle/lib/parser"
)

const historyFile = ".wattle_history"

func init() {
	commands = append(commands, &cli.Command{
		Name:     "repl",
		Usage:    "Compile statements interactively",
		Category: "compile",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "scratch",
				Usage: "Declare the scratch local first or last",
			},
		},
		Action: repl,
	})
}

// session accumulates the statements entered so far. Every entry is
// compiled together with everything before it, so earlier definitions stay
// visible and a rejected entry leaves the session unchanged.
type session struct {
	c     *compiler.Compiler
	stmts []ast.Stmt
}

func newSession(opts compiler.Options) *session {
	return &session{c: compiler.NewCompiler(opts)}
}

// feed compiles src on top of the session and returns the lines generated
// for the new statements only.
func (s *session) feed(src string) ([]string, error) {
	stmts, err := parser.Parse("<repl>", src)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, nil
	}

	all := append(append([]ast.Stmt(nil), s.stmts...), stmts...)
	out, err := s.c.Compile(all)
	if err != nil {
		return nil, err
	}
	s.stmts = all

	var lines []string
	for _, block := range out.Blocks[len(out.Blocks)-len(stmts):] {
		for _, in := range block {
			lines = append(lines, in.String())
		}
	}
	return lines, nil
}

func (s *session) show() (string, error) {
	out, err := s.c.Compile(s.stmts)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

func (s *session) reset() {
	s.stmts = nil
}

func repl(c *cli.Context) error {
	placement, err := compiler.ParsePlacement(c.String("scratch"))
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	s := newSession(compiler.Options{ScratchPlacement: placement})

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Printf("wattle %s. Type :quit to exit.\n", Version)
	for {
		line, err := ln.Prompt(">>> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			switch strings.ToLower(line) {
			case ":quit", ":q":
				return nil
			case ":reset":
				s.reset()
			case ":show":
				text, err := s.show()
				if err != nil {
					fmt.Fprintln(os.Stderr, color.RedString(describe(err)))
					continue
				}
				fmt.Println(text)
			default:
				fmt.Println("unknown command. Try :show, :reset or :quit")
			}
			continue
		}

		lines, err := s.feed(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(describe(err)))
			continue
		}
		for _, l := range lines {
			fmt.Println(color.CyanString(l))
		}
	}
}
