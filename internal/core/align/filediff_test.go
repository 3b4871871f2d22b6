package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textFile(path string, lines ...string) *File {
	return &File{Path: path, Content: LinesContent(lines)}
}

func TestDiffID_WorkingTree(t *testing.T) {
	assert.True(t, NewDiffID("HEAD", "@").IsWorkingTree())
	assert.False(t, NewDiffID("main", "feature").IsWorkingTree())
}

func TestFileDiff_ChangeKind(t *testing.T) {
	tests := []struct {
		name string
		diff FileDiff
		want ChangeKind
	}{
		{
			name: "added",
			diff: FileDiff{After: textFile("new.txt")},
			want: Added,
		},
		{
			name: "deleted",
			diff: FileDiff{Before: textFile("old.txt")},
			want: Deleted,
		},
		{
			name: "modified",
			diff: FileDiff{Before: textFile("f.txt"), After: textFile("f.txt")},
			want: Modified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diff.ChangeKind())
		})
	}
}

func TestFileDiff_IsRename(t *testing.T) {
	rename := FileDiff{Before: textFile("old_name.txt"), After: textFile("new_name.txt")}
	assert.True(t, rename.IsRename())

	same := FileDiff{Before: textFile("same.txt"), After: textFile("same.txt")}
	assert.False(t, same.IsRename())

	added := FileDiff{After: textFile("new.txt")}
	assert.False(t, added.IsRename())
}

func TestFileDiff_Path(t *testing.T) {
	d := FileDiff{Before: textFile("old.txt"), After: textFile("new.txt")}
	assert.Equal(t, "new.txt", d.Path())

	deleted := FileDiff{Before: textFile("old.txt")}
	assert.Equal(t, "old.txt", deleted.Path())

	assert.Equal(t, "", (&FileDiff{}).Path())
}

func TestIsBinaryData(t *testing.T) {
	assert.True(t, IsBinaryData([]byte{0x00, 0x01, 0x02}))
	assert.False(t, IsBinaryData([]byte("hello world")))
}

func TestTextContent_SplitsLines(t *testing.T) {
	c := TextContent("a\nb\nc\n")
	require.Equal(t, []string{"a", "b", "c"}, c.Lines())
	assert.Equal(t, 3, c.LineCount())

	empty := TextContent("")
	assert.Equal(t, 0, empty.LineCount())
}

func TestSpan(t *testing.T) {
	s := NewSpan(2, 5)
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5))

	assert.True(t, NewSpan(3, 3).IsEmpty())
	assert.True(t, NewSpan(0, 4).Overlaps(NewSpan(3, 6)))
	assert.False(t, NewSpan(0, 3).Overlaps(NewSpan(3, 6)))
}
