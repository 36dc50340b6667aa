package project

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/vyPal/wattle/lib/compiler"
	"github.com/vyPal/wattle/util"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the project file looked up in a project root.
const ConfigFile = "wattle.yaml"

type Config struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Version     string         `yaml:"version"`
	Main        string         `yaml:"main"`
	Output      string         `yaml:"output,omitempty"`
	Author      string         `yaml:"author"`
	License     string         `yaml:"license"`
	Compiler    CompilerConfig `yaml:"compiler"`
}

type CompilerConfig struct {
	Emit    string `yaml:"emit"`
	Scratch string `yaml:"scratch"`
}

// Emit targets.
const (
	EmitWAT    = "wat"
	EmitModule = "module"
	EmitLLVM   = "llvm"
)

func (c *Config) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new Wattle project"
	c.Version = "1.0.0"
	c.Main = "src/main.py"
	c.Output = "build/main.wat"
	c.Author = "Anonymous"
	c.License = "MIT"
	c.Compiler = CompilerConfig{Emit: EmitWAT, Scratch: string(compiler.ScratchFirst)}
}

// Validate checks the fields the compiler depends on.
func (c *Config) Validate() error {
	if c.Main == "" {
		return fmt.Errorf("%s: main is not set", ConfigFile)
	}
	switch c.Compiler.Emit {
	case "", EmitWAT, EmitModule, EmitLLVM:
	default:
		return fmt.Errorf("%s: unknown emit target %q", ConfigFile, c.Compiler.Emit)
	}
	if _, err := compiler.ParsePlacement(c.Compiler.Scratch); err != nil {
		return fmt.Errorf("%s: %w", ConfigFile, err)
	}
	return nil
}

// Options returns the compiler options described by the config.
func (c *Config) Options() compiler.Options {
	placement, _ := compiler.ParsePlacement(c.Compiler.Scratch)
	return compiler.Options{ScratchPlacement: placement}
}

// ErrKept is returned by Save when the user chose to keep an existing file.
var ErrKept = errors.New("kept existing config")

// Save writes the config to filepath. An existing file is only replaced
// when overwrite is set or the user agrees to it; otherwise ErrKept.
func (c *Config) Save(filepath string, overwrite bool) error {
	if _, err := os.Stat(filepath); !os.IsNotExist(err) {
		if !overwrite && !util.PromptYN(filepath+" already exists. Overwrite?", false) {
			return ErrKept
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath, yml, 0644)
}

func GetConfig(dir string) (Config, error) {
	var conf Config

	file, err := os.Open(path.Join(dir, ConfigFile))
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	err = decoder.Decode(&conf)
	if err != nil {
		return Config{}, err
	}

	return conf, conf.Validate()
}
