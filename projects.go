package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/wattle/lib/project"
	"github.com/vyPal/wattle/util"
)

const sampleProgram = `# Compiles to a stack of i32 instructions.
x = 6 * 7
y = max(x, 10) - 2
print(y)
`

const gitignore = "build/\n*.ast.json\n"

var errInitAborted = errors.New("init aborted")

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new Wattle project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "The version of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.StringFlag{
				Name:    "license",
				Aliases: []string{"l"},
				Usage:   "The license of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept the defaults without prompting",
			},
			&cli.BoolFlag{
				Name:  "no-git",
				Usage: "Do not create a git repository",
			},
		},
		Action: initProject,
	})
}

type initOptions struct {
	dir     string
	conf    project.Config
	prompt  bool
	initGit bool
}

func initOptionsFromContext(c *cli.Context) initOptions {
	o := initOptions{
		dir:     c.Args().First(),
		prompt:  !c.Bool("yes"),
		initGit: !c.Bool("no-git"),
	}
	if o.dir == "" {
		o.dir = "."
	}

	name := filepath.Base(o.dir)
	if abs, err := filepath.Abs(o.dir); err == nil {
		name = filepath.Base(abs)
	}
	o.conf.CreateDefault(name)

	// Explicit flags win over both defaults and prompts.
	set := func(flag string, field *string) {
		if v := c.String(flag); v != "" {
			*field = v
		}
	}
	set("name", &o.conf.Name)
	set("version", &o.conf.Version)
	set("main", &o.conf.Main)
	set("author", &o.conf.Author)
	set("license", &o.conf.License)
	return o
}

func initProject(c *cli.Context) error {
	o := initOptionsFromContext(c)
	if o.prompt && !util.PromptYN("Use default configuration?", true) {
		o.conf.Name = util.PromptString("Project name", o.conf.Name)
		o.conf.Description = util.PromptString("Project description", o.conf.Description)
		o.conf.Version = util.PromptString("Project version", o.conf.Version)
		o.conf.Main = util.PromptString("Main file", o.conf.Main)
		o.conf.Author = util.PromptString("Author", o.conf.Author)
		o.conf.License = util.PromptString("License", o.conf.License)
	}

	err := createProject(o)
	if errors.Is(err, errInitAborted) {
		return nil
	} else if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	fmt.Println("----------------------------------------")
	fmt.Println("Project initialized successfully!")
	fmt.Println("Run 'cd", o.dir, "&& wattle build' to build the project.")
	fmt.Println("----------------------------------------")
	return nil
}

// createProject lays out a project in o.dir. Files that already exist are
// left alone, apart from the config which is only replaced on confirmation.
func createProject(o initOptions) error {
	if err := o.conf.Validate(); err != nil {
		return err
	}

	if entries, err := os.ReadDir(o.dir); err == nil {
		if len(entries) > 0 && o.prompt && !util.PromptYN("The directory is not empty, continue?", false) {
			return errInitAborted
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(o.dir, 0755); err != nil {
			return err
		}
		fmt.Println("Created directory:", o.dir)
	} else {
		return err
	}

	mainPath := filepath.Join(o.dir, o.conf.Main)
	if err := writeIfMissing(mainPath, sampleProgram); err != nil {
		return err
	}

	confPath := filepath.Join(o.dir, project.ConfigFile)
	switch err := o.conf.Save(confPath, !o.prompt); {
	case errors.Is(err, project.ErrKept):
		fmt.Println("Kept existing file:", confPath)
	case err != nil:
		return err
	default:
		fmt.Println("Created file:", confPath)
	}

	if !o.initGit {
		return nil
	}
	if err := writeIfMissing(filepath.Join(o.dir, ".gitignore"), gitignore); err != nil {
		return err
	}
	_, err := git.PlainInit(o.dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		color.Yellow("%s is already a git repository", o.dir)
		return nil
	} else if err != nil {
		return fmt.Errorf("initializing git repository: %w", err)
	}
	fmt.Println("Initialized git repository in", o.dir)
	return nil
}

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	fmt.Println("Created file:", path)
	return nil
}
