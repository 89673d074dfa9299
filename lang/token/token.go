package token

// A Token represents an operator of the expression language. The kernel does
// not scan source code, the tokens identify the operators that the compiler
// lowers to calls into the machine.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota

	// arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /

	// collection operators
	SLASHSLASH // //
	PLUSPLUS   // ++
	QUESTION   // ?
	DOT        // .

	// relational operators
	EQEQ   // ==
	BANGEQ // !=
	LT     // <
	GT     // >
	GE     // >=
	LE     // <=

	// logical operators
	ANDAND   // &&
	PIPEPIPE // ||
	ARROW    // ->
	BANG     // !

	maxToken             = BANG
	punctStart, punctEnd = PLUS, BANG
)

func (tok Token) String() string {
	if tok < 0 || tok > maxToken {
		return tokenNames[ILLEGAL]
	}
	return tokenNames[tok]
}

// GoString is like String but quotes operator tokens. Use Sprintf("%#v",
// tok) when constructing error messages.
func (tok Token) GoString() string {
	if tok >= punctStart && tok <= punctEnd {
		return "'" + tokenNames[tok] + "'"
	}
	return tok.String()
}

// IsRelational returns true if tok is one of the comparison operators.
func (tok Token) IsRelational() bool { return tok >= EQEQ && tok <= LE }

var tokenNames = [...]string{
	ILLEGAL: "illegal token",

	PLUS:  "+",
	MINUS: "-",
	STAR:  "*",
	SLASH: "/",

	SLASHSLASH: "//",
	PLUSPLUS:   "++",
	QUESTION:   "?",
	DOT:        ".",

	EQEQ:   "==",
	BANGEQ: "!=",
	LT:     "<",
	GT:     ">",
	GE:     ">=",
	LE:     "<=",

	ANDAND:   "&&",
	PIPEPIPE: "||",
	ARROW:    "->",
	BANG:     "!",
}

var punctuations = func() map[string]Token {
	puncts := make(map[string]Token)
	for i := punctStart; i <= punctEnd; i++ {
		puncts[tokenNames[i]] = i
	}
	return puncts
}()

// LookupOp maps an operator's text to its token or ILLEGAL (if not a valid
// operator).
func LookupOp(op string) Token {
	if tok, ok := punctuations[op]; ok {
		return tok
	}
	return ILLEGAL
}
