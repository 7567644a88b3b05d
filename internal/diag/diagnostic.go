package diag

import (
	"blanklines/internal/source"
)

type Note struct {
	Pos source.LineCol
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.LineCol
	Notes    []Note
}
