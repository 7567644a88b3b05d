package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM records that a UTF-8 byte order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF records that CRLF line endings were rewritten to LF on load.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
// LineIdx holds the byte offset of every '\n' in Content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 0-based, matching the column convention of syntax trees
}
