package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// I/O and document decoding
	IOInfo          Code = 1000
	IOLoadFileError Code = 1001
	IODecodeError   Code = 1002
	IOWriteError    Code = 1003
	IOSourceMissing Code = 1004

	// Tree preconditions
	TreeInfo                Code = 2000
	TreeParentMismatch      Code = 2001
	TreeEmptyComposite      Code = 2002
	TreeDecoratorNoTarget   Code = 2003
	TreeAsyncNoTarget       Code = 2004
	TreeDefinitionNoKeyword Code = 2005
	TreeBadPosition         Code = 2006
	TreeUnknownKind         Code = 2007

	// Style configuration
	StyleInfo          Code = 3000
	StyleInvalid       Code = 3001
	StyleUnknownOption Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	IOInfo:                  "I/O information",
	IOLoadFileError:         "I/O load file error",
	IODecodeError:           "Malformed tree document",
	IOWriteError:            "I/O write error",
	IOSourceMissing:         "Source file named by the document is missing",
	TreeInfo:                "Tree information",
	TreeParentMismatch:      "Parent link does not match the owning node",
	TreeEmptyComposite:      "Composite node without children",
	TreeDecoratorNoTarget:   "Decorator is not bound to a definition",
	TreeAsyncNoTarget:       "Async marker is not followed by a definition or statement",
	TreeDefinitionNoKeyword: "Definition has no non-comment child",
	TreeBadPosition:         "Leaf has an invalid position",
	TreeUnknownKind:         "Node has an unknown kind",
	StyleInfo:               "Style information",
	StyleInvalid:            "Invalid style value",
	StyleUnknownOption:      "Unknown style option",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TRE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("STY%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
