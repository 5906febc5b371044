package parsers

import (
	"regexp"

	"github.com/rs/zerolog"

	"github.com/kublaj/drizzle-builder/pkg/errors"
	"github.com/kublaj/drizzle-builder/pkg/logging"
)

// DefaultRuleName marks the fallback rule in a rule list
const DefaultRuleName = "default"

// ContentsKey is the data key holding a file's body content
const ContentsKey = "contents"

// ParseFunc turns raw file text into a data map. Implementations that
// conceptually produce a plain string wrap it as {"contents": string}.
type ParseFunc func(text []byte, path string) (map[string]interface{}, error)

// Rule maps a path pattern to a parse function
type Rule struct {
	// Name identifies the rule; "default" marks the fallback rule
	Name string

	// Pattern is a regular expression tested against the file path.
	// Ignored for the default rule.
	Pattern string

	// Parse is the function run over matching files
	Parse ParseFunc
}

type compiledRule struct {
	name    string
	pattern *regexp.Regexp
	parse   ParseFunc
}

// Set is an ordered, compiled list of parser rules
type Set struct {
	rules    []compiledRule
	fallback ParseFunc
	logger   zerolog.Logger
}

// NewSet compiles the given rules into a Set. Rule order is evaluation
// order; the first rule whose pattern matches a path wins.
func NewSet(rules []Rule) (*Set, error) {
	s := &Set{
		fallback: Identity,
		logger:   logging.GetLogger("parsers"),
	}
	for _, r := range rules {
		if r.Name == DefaultRuleName {
			s.fallback = r.Parse
			continue
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput,
				"invalid pattern %q in parser rule %q", r.Pattern, r.Name).
				WithDetail("rule", r.Name)
		}
		s.rules = append(s.rules, compiledRule{name: r.Name, pattern: re, parse: r.Parse})
	}
	return s, nil
}

// Match returns the parse function for the first rule matching path,
// the default rule's function when no rule matches, or Identity when
// there is no default rule.
func (s *Set) Match(path string) ParseFunc {
	for _, r := range s.rules {
		if r.pattern.MatchString(path) {
			s.logger.Trace().
				Str("file", path).
				Str("rule", r.name).
				Msg("File matched parser rule")
			return r.parse
		}
	}
	return s.fallback
}

// Identity wraps raw text as {"contents": text}
func Identity(text []byte, _ string) (map[string]interface{}, error) {
	return map[string]interface{}{ContentsKey: string(text)}, nil
}

// DefaultRules returns the built-in parser rules: markdown files are
// converted to HTML, everything else keeps front matter plus raw body.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "markdown", Pattern: `\.(md|markdown)$`, Parse: Markdown},
		{Name: DefaultRuleName, Parse: FrontMatter},
	}
}

// DefaultSet compiles DefaultRules. The built-in patterns always compile.
func DefaultSet() *Set {
	s, err := NewSet(DefaultRules())
	if err != nil {
		panic(err)
	}
	return s
}
