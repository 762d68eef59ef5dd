package lexer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"PrattKit/token"
)

// Rule is one pattern of a mode in a Definition. Skip, Push and Pop describe
// what the stream does when the rule matches; they are applied in that order.
type Rule struct {
	Kind    token.Kind `yaml:"kind" toml:"kind"`
	Pattern string     `yaml:"pattern" toml:"pattern"`
	Skip    bool       `yaml:"skip" toml:"skip"`
	Push    string     `yaml:"push" toml:"push"`
	Pop     bool       `yaml:"pop" toml:"pop"`
}

// Definition describes a complete lexer: stream options plus named modes.
//
//	eos_token: T_END
//	stack_size: 3
//	start: main
//	modes:
//	  main:
//	    - {kind: T_WS, pattern: '\s+', skip: true}
//	    - {kind: T_QUOTE, pattern: '"', push: text}
//	  text:
//	    - {kind: T_TEXT, pattern: '[^"]+'}
//	    - {kind: T_QUOTE, pattern: '"', pop: true}
type Definition struct {
	Options `yaml:",inline"`
	Start   string            `yaml:"start" toml:"start"`
	Modes   map[string][]Rule `yaml:"modes" toml:"modes"`
}

// LoadDefinition reads a YAML (.yaml, .yml) or TOML (.toml) definition.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexer definition: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	}
	return nil, fmt.Errorf("unsupported lexer definition format %q", filepath.Ext(path))
}

func ParseYAML(data []byte) (*Definition, error) {
	def := newDefinition()
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("parse yaml lexer definition: %w", err)
	}
	return def, nil
}

func ParseTOML(data []byte) (*Definition, error) {
	def := newDefinition()
	if _, err := toml.Decode(string(data), def); err != nil {
		return nil, fmt.Errorf("parse toml lexer definition: %w", err)
	}
	return def, nil
}

func newDefinition() *Definition {
	return &Definition{Options: DefaultOptions(), Start: "main"}
}

// Compile builds one PatternSet per mode and returns the start mode.
func (d *Definition) Compile() (State, error) {
	if err := d.Options.validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(d.Modes))
	for name := range d.Modes {
		names = append(names, name)
	}
	slices.Sort(names)

	if _, ok := d.Modes[d.Start]; !ok {
		return nil, fmt.Errorf("%w %q as start mode%s", ErrUnknownMode, d.Start, suggest(d.Start, names))
	}

	sets := make(map[string]*PatternSet, len(d.Modes))
	for _, name := range names {
		rules := d.Modes[name]
		patterns := make([]Pattern, len(rules))
		for i, r := range rules {
			patterns[i] = Pattern{Kind: r.Kind, Expr: r.Pattern}
		}
		set, err := NewPatternSet(patterns...)
		if err != nil {
			return nil, fmt.Errorf("mode %s: %w", name, err)
		}
		sets[name] = set
	}

	for _, name := range names {
		for _, r := range d.Modes[name] {
			if !r.Skip && r.Push == "" && !r.Pop {
				continue
			}
			var next *PatternSet
			if r.Push != "" {
				var ok bool
				if next, ok = sets[r.Push]; !ok {
					return nil, fmt.Errorf("%w %q pushed by %s in mode %s%s", ErrUnknownMode, r.Push, r.Kind, name, suggest(r.Push, names))
				}
			}
			if err := sets[name].On(r.Kind, ruleHandler(r, next)); err != nil {
				return nil, fmt.Errorf("mode %s: %w", name, err)
			}
		}
	}

	return sets[d.Start], nil
}

func ruleHandler(r Rule, next *PatternSet) Handler {
	return func(sh Shifter, _ string) error {
		if r.Skip {
			sh.Skip()
		}
		if next != nil {
			if err := sh.Push(next); err != nil {
				return err
			}
		}
		if r.Pop {
			return sh.Pop()
		}
		return nil
	}
}

// NewTokenStream compiles the definition and opens a stream over input with
// the definition's options. Extra opts are applied afterwards.
func (d *Definition) NewTokenStream(input any, opts ...Option) (*TokenStream, error) {
	start, err := d.Compile()
	if err != nil {
		return nil, err
	}
	return NewTokenStream(start, input, append([]Option{WithOptions(d.Options)}, opts...)...)
}
