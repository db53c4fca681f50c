package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents a decimal integer literal.
	IntLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// KwPrint represents the 'print' keyword.
	KwPrint // print
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwSet represents the 'set' keyword.
	KwSet // set
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the eq eq operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the bang eq operator token.
	BangEq // !=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// AndAnd represents the and and operator token.
	AndAnd // &&
	// OrOr represents the or or operator token.
	OrOr // ||
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// Dollar represents the dollar token opening a function.
	Dollar // $
	// LParen represents the left parenthesis operator token.
	LParen // (
	// RParen represents the right parenthesis operator token.
	RParen // )
	// LBrace represents the left brace operator token.
	LBrace // {
	// RBrace represents the right brace operator token.
	RBrace // }
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	KwPrint:   "KwPrint",
	KwAssert:  "KwAssert",
	KwLet:     "KwLet",
	KwSet:     "KwSet",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	Amp:       "Amp",
	Pipe:      "Pipe",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Dollar:    "Dollar",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
}

var kindLexemes = map[Kind]string{
	KwPrint: "print", KwAssert: "assert", KwLet: "let", KwSet: "set",
	KwTrue: "true", KwFalse: "false",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Assign: "=",
	EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Amp: "&", Pipe: "|", AndAnd: "&&", OrOr: "||",
	Semicolon: ";", Comma: ",", Dollar: "$",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe returns a human-readable description of the kind for error messages:
// the quoted lexeme for fixed tokens, a category name otherwise.
func (k Kind) Describe() string {
	if lx, ok := kindLexemes[k]; ok {
		return "'" + lx + "'"
	}
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer"
	case StringLit:
		return "string"
	default:
		return k.String()
	}
}
