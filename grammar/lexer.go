package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var SumiLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords must win over identifiers
		{"Keyword", `\b(?:function|let|if|switch|case|default|for|break|continue|leave|true|false)\b`, nil},

		// Identifiers
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals, hex before decimal
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},

		// Operators
		{"Define", `:=`, nil},
		{"Arrow", `->`, nil},

		// Punctuation
		{"Punctuation", `[{}(),]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
