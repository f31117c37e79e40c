package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
// Content is never rewritten after Add: token ranges index into it directly.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offset of the last byte of every line terminator
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// LoadOptions tweaks how Load prepares file content.
type LoadOptions struct {
	// NormalizeNFC rewrites the content into Unicode normalization form C
	// before it is indexed.
	NormalizeNFC bool
}
