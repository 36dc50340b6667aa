package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/wattle/lib/analyzer"
	"github.com/vyPal/wattle/lib/compiler"
	"github.com/vyPal/wattle/lib/llvmgen"
	"github.com/vyPal/wattle/lib/parser"
	"github.com/vyPal/wattle/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "build",
		Usage:     "Compile Wattle source files",
		Category:  "compile",
		ArgsUsage: "[files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "The path to the project directory or its " + project.ConfigFile,
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Where to write the output. Use - for stdout",
			},
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Compile a string instead of a file",
			},
			&cli.StringFlag{
				Name:  "emit",
				Usage: "What to generate: wat, module or llvm",
			},
			&cli.StringFlag{
				Name:  "scratch",
				Usage: "Declare the scratch local first or last",
			},
			&cli.BoolFlag{
				Name:    "dump-ast",
				Aliases: []string{"d"},
				Usage:   "Dump the parse tree of each file to <file>.ast.json",
			},
			&cli.BoolFlag{
				Name:    "only-parse",
				Aliases: []string{"p"},
				Usage:   "Only parse the input and print the parse tree as JSON",
			},
			&cli.BoolFlag{
				Name: "ebnf",
				Usage: "Print the EBNF grammar for Wattle. " +
					"Useful for debugging the parser.",
			},
		},
		Action: build,
	}, &cli.Command{
		Name:      "check",
		Usage:     "Parse a file and check that every variable is defined before use",
		Category:  "compile",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Check a string instead of a file",
			},
		},
		Action: check,
	})
}

type buildSettings struct {
	opts      compiler.Options
	emit      string
	output    string
	dumpAST   bool
	onlyParse bool
}

func settingsFromContext(c *cli.Context, conf *project.Config) (buildSettings, error) {
	s := buildSettings{
		emit:      project.EmitWAT,
		dumpAST:   c.Bool("dump-ast"),
		onlyParse: c.Bool("only-parse"),
	}
	if conf != nil {
		if conf.Compiler.Emit != "" {
			s.emit = conf.Compiler.Emit
		}
		s.opts = conf.Options()
		s.output = conf.Output
	}
	if c.String("emit") != "" {
		s.emit = c.String("emit")
	}
	if c.String("output") != "" {
		s.output = c.String("output")
	}
	if scratch := c.String("scratch"); scratch != "" {
		placement, err := compiler.ParsePlacement(scratch)
		if err != nil {
			return s, err
		}
		s.opts.ScratchPlacement = placement
	}

	switch s.emit {
	case project.EmitWAT, project.EmitModule, project.EmitLLVM:
	default:
		return s, fmt.Errorf("unknown emit target %q", s.emit)
	}
	return s, nil
}

// describe renders an error with its source position when it has one.
func describe(err error) string {
	var undef *analyzer.UndefinedVariableError
	if errors.As(err, &undef) && undef.Pos.Line > 0 {
		return fmt.Sprintf("%s at %s", err, undef.Pos)
	}
	var unknown *compiler.UnknownOperatorError
	if errors.As(err, &unknown) && unknown.Pos.Line > 0 {
		return fmt.Sprintf("%s at %s", err, unknown.Pos)
	}
	return err.Error()
}

func compileError(err error) error {
	return cli.Exit(color.RedString("Error: %s", describe(err)), 1)
}

// compileSource runs the whole pipeline over one source text and renders the
// requested output.
func compileSource(filename, code string, s buildSettings) (string, error) {
	start := time.Now()
	tree, err := parser.ParseTree(filename, code)
	if err != nil {
		return "", err
	}
	log.Printf("%s: parsed in %s", displayName(filename), time.Since(start))

	if s.onlyParse || s.dumpAST {
		js, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding parse tree: %w", err)
		}
		if s.onlyParse {
			return string(js) + "\n", nil
		}
		if err := os.WriteFile(dumpPath(filename), append(js, '\n'), 0644); err != nil {
			return "", err
		}
	}

	stmts, err := parser.Lower(tree)
	if err != nil {
		return "", err
	}

	start = time.Now()
	out, err := compiler.NewCompiler(s.opts).Compile(stmts)
	if err != nil {
		return "", err
	}
	log.Printf("%s: %d statements, %d locals compiled in %s", displayName(filename), len(stmts), len(out.Locals), time.Since(start))

	switch s.emit {
	case project.EmitModule:
		return compiler.WrapModule(out), nil
	case project.EmitLLVM:
		return llvmgen.Emit(out)
	default:
		return out.String() + "\n", nil
	}
}

func displayName(filename string) string {
	if filename == "" {
		return "<input>"
	}
	return filename
}

func dumpPath(filename string) string {
	if filename == "" {
		return "ast_dump.json"
	}
	return filename + ".ast.json"
}

func outputPath(file, emit string) string {
	ext := ".wat"
	if emit == project.EmitLLVM {
		ext = ".ll"
	}
	return strings.TrimSuffix(file, filepath.Ext(file)) + ext
}

func writeOutput(path, text string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

func loadProject(c *cli.Context) (*project.Config, string, error) {
	dir := c.String("config")
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		dir = cwd
	}
	dir = strings.TrimSuffix(dir, project.ConfigFile)
	conf, err := project.GetConfig(dir)
	if err != nil {
		return nil, "", err
	}
	return &conf, dir, nil
}

func build(c *cli.Context) error {
	if c.Bool("ebnf") {
		fmt.Println(parser.Parser().String())
		return nil
	}

	if code := c.String("input-str"); code != "" {
		s, err := settingsFromContext(c, nil)
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		text, err := compileSource("", code, s)
		if err != nil {
			return compileError(err)
		}
		return writeOutput(s.output, text)
	}

	files := c.Args().Slice()
	var conf *project.Config
	if len(files) == 0 {
		var dir string
		var err error
		conf, dir, err = loadProject(c)
		if os.IsNotExist(err) {
			return cli.Exit(color.RedString("Error: No file specified and no %s found", project.ConfigFile), 1)
		} else if err != nil {
			return cli.Exit(color.RedString("Error reading project: %s", err), 1)
		}
		files = []string{filepath.Join(dir, conf.Main)}
		if conf.Output != "" {
			conf.Output = filepath.Join(dir, conf.Output)
		}
	}

	s, err := settingsFromContext(c, conf)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	if len(files) == 1 {
		text, err := compileFile(files[0], s)
		if err != nil {
			return compileError(err)
		}
		out := s.output
		if out == "" && !s.onlyParse {
			out = outputPath(files[0], s.emit)
		}
		return writeOutput(out, text)
	}

	if s.output != "" && s.output != "-" {
		color.Yellow("Ignoring --output with %d input files", len(files))
	}
	if err := processFiles(files, s); err != nil {
		return compileError(err)
	}
	return nil
}

func compileFile(path string, s buildSettings) (string, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return compileSource(path, string(code), s)
}

// processFiles compiles every file concurrently, each next to its source.
// Files are independent, so each goroutine owns its own tree. When several
// fail, the error of the earliest file is returned. Parse trees requested
// with --only-parse are printed in argument order once all files are done.
func processFiles(files []string, s buildSettings) error {
	var wg sync.WaitGroup
	errs := make([]error, len(files))
	texts := make([]string, len(files))

	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			text, err := compileFile(file, s)
			if err != nil {
				errs[i] = err
				return
			}
			if s.onlyParse {
				texts[i] = text
				return
			}
			errs[i] = writeOutput(outputPath(file, s.emit), text)
		}(i, file)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	if s.onlyParse {
		return writeOutput("-", strings.Join(texts, ""))
	}
	return nil
}

func check(c *cli.Context) error {
	var err error
	name := "<input>"
	if code := c.String("input-str"); code != "" {
		err = checkSource("", code)
	} else {
		name = c.Args().First()
		if name == "" {
			return cli.Exit(color.RedString("Error: No file specified"), 1)
		}
		var code []byte
		code, err = os.ReadFile(name)
		if err == nil {
			err = checkSource(name, string(code))
		}
	}
	if err != nil {
		return compileError(err)
	}
	fmt.Println(color.GreenString("ok"), name)
	return nil
}

func checkSource(filename, code string) error {
	stmts, err := parser.Parse(filename, code)
	if err != nil {
		return err
	}
	return analyzer.Check(stmts)
}
