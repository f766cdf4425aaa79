package domain

import "fmt"

// TargetKind is the kind of definition a marker is attached to.
type TargetKind string

const (
	// KindFunction is a def or async def.
	KindFunction TargetKind = "function"
	// KindClass is a class definition.
	KindClass TargetKind = "class"
)

// LineRange is an inclusive, 1-based line range.
type LineRange struct {
	Start int
	End   int
}

// Target is one marked definition queued for documentation generation.
// It is created by the scanner and not modified afterwards.
type Target struct {
	FilePath      string
	QualifiedName string
	Kind          TargetKind

	// Source is the exact text of the definition, decorators included.
	Source string
	// Body is the normalized text that is sent to the model.
	Body string

	Tag string
	// TagSet reports whether the marker carried an explicit tag.
	TagSet bool

	Lines LineRange

	// FileDigest fingerprints the whole file as it was when scanned.
	FileDigest string

	// Anchor locates where the docstring goes.
	Anchor DocAnchor
}

// ID returns the identity of the target within a run. The start line keeps
// definitions that share a qualified name apart, such as a property getter and
// its setter.
func (t Target) ID() string {
	return fmt.Sprintf("%s::%s:%d", t.FilePath, t.QualifiedName, t.Lines.Start)
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return fmt.Sprintf("%s:%d %s", t.FilePath, t.Lines.Start, t.QualifiedName)
}

// DocAnchor describes the byte ranges the writer needs to place a docstring.
// All offsets refer to the file content the target was scanned from.
type DocAnchor struct {
	// DefStart is the byte offset of the definition keyword (after decorators).
	DefStart int
	// Indent is the indentation of the body statements.
	Indent string
	// BodyStart is the byte offset of the first body statement.
	BodyStart int
	// HeaderEnd is the offset just after the ':' that closes the header.
	HeaderEnd int
	// Inline is true when the body starts on the header line, as in "def f(): pass".
	Inline bool
	// DocStart and DocEnd delimit an existing docstring statement. Both are -1 when absent.
	DocStart int
	DocEnd   int
}

// HasDocstring reports whether the definition already has a docstring.
func (a DocAnchor) HasDocstring() bool {
	return a.DocStart >= 0 && a.DocEnd > a.DocStart
}
