package pytree

// Kind is the closed set of node variants the walker dispatches on.
type Kind uint8

const (
	KindInvalid Kind = iota
	// Composites
	KindComposite  // any other grammar symbol (file_input, suite, decorated, ...)
	KindStatement  // a recognised statement symbol other than simple_stmt
	KindSimpleStmt // simple_stmt; also wraps a standalone comment
	KindClassDef
	KindFuncDef
	KindDecorator
	// Leaves
	KindToken
	KindComment
	KindAsync
)

func (k Kind) String() string {
	switch k {
	case KindComposite:
		return "composite"
	case KindStatement:
		return "statement"
	case KindSimpleStmt:
		return "simple_stmt"
	case KindClassDef:
		return "classdef"
	case KindFuncDef:
		return "funcdef"
	case KindDecorator:
		return "decorator"
	case KindToken:
		return "token"
	case KindComment:
		return "comment"
	case KindAsync:
		return "async"
	}
	return "invalid"
}

func (k Kind) IsValid() bool {
	return k > KindInvalid && k <= KindAsync
}

func (k Kind) IsLeaf() bool {
	return k == KindToken || k == KindComment || k == KindAsync
}

// IsStatement reports whether the kind is one of the recognised statement symbols.
func (k Kind) IsStatement() bool {
	return k == KindStatement || k == KindSimpleStmt
}

// IsDefinition reports whether the kind is a class or function definition.
func (k Kind) IsDefinition() bool {
	return k == KindClassDef || k == KindFuncDef
}

// Grammar symbols.
const (
	SymFileInput    = "file_input"
	SymSuite        = "suite"
	SymClassDef     = "classdef"
	SymFuncDef      = "funcdef"
	SymParameters   = "parameters"
	SymDecorator    = "decorator"
	SymDecorators   = "decorators"
	SymDecorated    = "decorated"
	SymAsyncFuncDef = "async_funcdef"
	SymAsyncStmt    = "async_stmt"
	SymSimpleStmt   = "simple_stmt"
	SymExprStmt     = "expr_stmt"
	SymPassStmt     = "pass_stmt"
	SymReturnStmt   = "return_stmt"
	SymImportStmt   = "import_stmt"
	SymIfStmt       = "if_stmt"
	SymWhileStmt    = "while_stmt"
	SymForStmt      = "for_stmt"
	SymTryStmt      = "try_stmt"
	SymWithStmt     = "with_stmt"
)

// Token names.
const (
	TokName      = "NAME"
	TokOp        = "OP"
	TokComment   = "COMMENT"
	TokAsync     = "ASYNC"
	TokNewline   = "NEWLINE"
	TokIndent    = "INDENT"
	TokDedent    = "DEDENT"
	TokEndMarker = "ENDMARKER"
)

var statementSymbols = map[string]struct{}{
	"small_stmt":    {},
	"expr_stmt":     {},
	"print_stmt":    {},
	"del_stmt":      {},
	"pass_stmt":     {},
	"break_stmt":    {},
	"continue_stmt": {},
	"return_stmt":   {},
	"raise_stmt":    {},
	"yield_stmt":    {},
	"import_stmt":   {},
	"global_stmt":   {},
	"exec_stmt":     {},
	"assert_stmt":   {},
	"if_stmt":       {},
	"while_stmt":    {},
	"for_stmt":      {},
	"try_stmt":      {},
	"with_stmt":     {},
	"nonlocal_stmt": {},
	"async_stmt":    {},
	"simple_stmt":   {},
}

// IsStatementSymbol reports whether sym is a recognised statement symbol.
func IsStatementSymbol(sym string) bool {
	_, ok := statementSymbols[sym]
	return ok
}

// ClassifySymbol maps a composite grammar symbol to its Kind.
func ClassifySymbol(sym string) Kind {
	switch sym {
	case "":
		return KindInvalid
	case SymClassDef:
		return KindClassDef
	case SymFuncDef:
		return KindFuncDef
	case SymDecorator:
		return KindDecorator
	case SymSimpleStmt:
		return KindSimpleStmt
	}
	if IsStatementSymbol(sym) {
		return KindStatement
	}
	return KindComposite
}

// ClassifyToken maps a leaf token name to its Kind.
func ClassifyToken(tok string) Kind {
	switch tok {
	case "":
		return KindInvalid
	case TokComment:
		return KindComment
	case TokAsync:
		return KindAsync
	}
	return KindToken
}
