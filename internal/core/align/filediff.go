package align

import "strings"

// WorkingTreeRef is the special ref representing the uncommitted working tree.
const WorkingTreeRef = "@"

// DiffID identifies a diff between two repository states. Each side is a
// ref (branch, tag), a SHA, or WorkingTreeRef for the working tree.
type DiffID struct {
	Before string
	After  string
}

// NewDiffID creates a diff identity.
func NewDiffID(before, after string) DiffID {
	return DiffID{Before: before, After: after}
}

// IsWorkingTree reports whether the diff includes the working tree.
func (id DiffID) IsWorkingTree() bool {
	return id.After == WorkingTreeRef
}

func (id DiffID) String() string {
	return id.Before + ".." + id.After
}

// FileContent is the content of a file at a specific state: either a
// sequence of text lines or an opaque binary marker.
type FileContent struct {
	lines  []string
	binary bool
}

// TextContent creates text content from a string, splitting into lines.
func TextContent(content string) FileContent {
	if content == "" {
		return FileContent{}
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return FileContent{lines: lines}
}

// LinesContent creates text content from pre-split lines.
func LinesContent(lines []string) FileContent {
	return FileContent{lines: lines}
}

// BinaryContent creates the opaque binary marker.
func BinaryContent() FileContent {
	return FileContent{binary: true}
}

// IsBinary reports whether the content is the binary marker.
func (c FileContent) IsBinary() bool {
	return c.binary
}

// Lines returns the text lines, or nil for binary content.
func (c FileContent) Lines() []string {
	if c.binary {
		return nil
	}
	return c.lines
}

// LineCount returns the number of text lines.
func (c FileContent) LineCount() int {
	return len(c.Lines())
}

// binarySniffLen bounds how much of a file is inspected for NUL bytes.
const binarySniffLen = 8192

// IsBinaryData reports whether raw bytes look like binary content,
// using the common NUL-byte heuristic over the first 8 KiB.
func IsBinaryData(data []byte) bool {
	n := min(len(data), binarySniffLen)
	for _, b := range data[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}

// File is one side of a file pair: a path and its content.
type File struct {
	Path    string
	Content FileContent
}

// ChangeKind is the type of change a file underwent.
type ChangeKind int

const (
	Modified ChangeKind = iota
	Added
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	default:
		return "modified"
	}
}

// FileDiff is the diff for a single file between two states. It is
// constructed once per file selection and never mutated: selecting a
// different file or diff identity replaces it wholesale.
type FileDiff struct {
	// Before is the file before the change (nil if the file was added).
	Before *File
	// After is the file after the change (nil if the file was deleted).
	After *File
	// Alignments map regions between before and after. They partition
	// both line ranges completely; see Validate.
	Alignments []Alignment
}

// Path returns the primary path for the diff, preferring the after side.
func (d *FileDiff) Path() string {
	if d.After != nil {
		return d.After.Path
	}
	if d.Before != nil {
		return d.Before.Path
	}
	return ""
}

// ChangeKind returns the kind of change the file underwent.
func (d *FileDiff) ChangeKind() ChangeKind {
	switch {
	case d.Before == nil && d.After != nil:
		return Added
	case d.Before != nil && d.After == nil:
		return Deleted
	default:
		return Modified
	}
}

// IsRename reports whether the before and after paths differ.
func (d *FileDiff) IsRename() bool {
	return d.Before != nil && d.After != nil && d.Before.Path != d.After.Path
}

// IsBinary reports whether either side is binary.
func (d *FileDiff) IsBinary() bool {
	if d.Before != nil && d.Before.Content.IsBinary() {
		return true
	}
	return d.After != nil && d.After.Content.IsBinary()
}

// LineCount returns the number of lines on the given side.
func (d *FileDiff) LineCount(side Side) int {
	f := d.Before
	if side == After {
		f = d.After
	}
	if f == nil {
		return 0
	}
	return f.Content.LineCount()
}

// SideLines returns the text lines of the given side, or nil when the file
// does not exist on that side.
func (d *FileDiff) SideLines(side Side) []string {
	f := d.Before
	if side == After {
		f = d.After
	}
	if f == nil {
		return nil
	}
	return f.Content.Lines()
}
