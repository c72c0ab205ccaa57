// Package catalogdsl loads the external rule-catalog stanza format (spec
// SPEC_FULL.md §3 "Rule catalog DSL", §4.8) into rule.Rule descriptors,
// grounded on parser/grammar.go's struct-tag grammar approach (participle).
package catalogdsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the top-level grammar node: a sequence of stanzas.
type File struct {
	Stanzas []*Stanza `parser:"@@*"`
}

// Stanza is one "fragment NAME = `regex`" or "keyword NAME = a, b, c" line.
type Stanza struct {
	Pos       lexer.Position
	Kind      string   `parser:"@('fragment' | 'keyword')"`
	Name      string   `parser:"@Ident '='"`
	Regex     *string  `parser:"( @Regex"`
	Words     []string `parser:"| @Ident (',' @Ident)* )"`
}

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Regex", Pattern: "`[^`]*`"},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_?]*`},
	{Name: "Punct", Pattern: `[=,]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var dslParser = participle.MustBuild[File](
	participle.Lexer(dslLexer),
	participle.Elide("whitespace", "Comment"),
	participle.Unquote("Regex"),
)
