package source

type (
	// FileID uniquely identifies a source buffer within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source buffer was obtained.
	FileFlags uint8
)

const (
	// FileVirtual indicates the buffer was added from memory (-e flag, stdin, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single expression source.
// Content is the buffer every token and RPN span points into; it must stay
// alive for as long as any derived sequence is in use.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source buffer.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
