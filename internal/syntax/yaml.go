package syntax

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk layout of a YAML rule file:
//
//	languages:
//	  - name: Lua
//	    extensions: [.lua]
//	    comment: "--"
//	    rules:
//	      - category: keyword
//	        words: [local, function, end]
//	      - category: comment
//	        pattern: '--[^\n]*'
type ruleFile struct {
	Languages []yamlLanguage `yaml:"languages"`
}

type yamlLanguage struct {
	Name       string     `yaml:"name"`
	Aliases    []string   `yaml:"aliases"`
	Extensions []string   `yaml:"extensions"`
	Comment    string     `yaml:"comment"`
	Rules      []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Category string   `yaml:"category"`
	Pattern  string   `yaml:"pattern"`
	Words    []string `yaml:"words"`
}

// ErrRuleShape is returned for a rule with both or neither of pattern and words.
var ErrRuleShape = errors.New("rule needs exactly one of pattern or words")

// ParseYAML decodes language definitions from r. Rules are not compiled;
// pattern errors surface when the registry is built.
func ParseYAML(r io.Reader) ([]Language, error) {
	var f ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	langs := make([]Language, 0, len(f.Languages))
	for _, yl := range f.Languages {
		lang := Language{
			Name:       yl.Name,
			Aliases:    yl.Aliases,
			Extensions: yl.Extensions,
			Comment:    yl.Comment,
		}
		for i, yr := range yl.Rules {
			rule, err := yr.toRule()
			if err != nil {
				return nil, fmt.Errorf("language %q rule %d: %w", yl.Name, i, err)
			}
			lang.Rules = append(lang.Rules, rule)
		}
		langs = append(langs, lang)
	}
	return langs, nil
}

func (yr ruleSpec) toRule() (Rule, error) {
	cat, ok := ParseCategory(yr.Category)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownCategory, yr.Category)
	}
	hasPattern, hasWords := yr.Pattern != "", len(yr.Words) > 0
	switch {
	case hasPattern && !hasWords:
		return Pattern(cat, yr.Pattern), nil
	case hasWords && !hasPattern:
		return Words(cat, yr.Words...), nil
	default:
		return Rule{}, ErrRuleShape
	}
}

// LoadYAMLFile reads language definitions from a YAML rule file.
func LoadYAMLFile(path string) ([]Language, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	defer f.Close()

	langs, err := ParseYAML(f)
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	return langs, nil
}
