package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/pkg/executil"
)

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name string
		line string
		want FileStatus
	}{
		{
			name: "modified",
			line: "M\tinternal/app/model.go",
			want: FileStatus{Path: "internal/app/model.go", Kind: align.Modified},
		},
		{
			name: "added",
			line: "A\tREADME.md",
			want: FileStatus{Path: "README.md", Kind: align.Added},
		},
		{
			name: "deleted",
			line: "D\told/legacy.go",
			want: FileStatus{Path: "old/legacy.go", Kind: align.Deleted},
		},
		{
			name: "rename with score",
			line: "R092\tpkg/old.go\tpkg/new.go",
			want: FileStatus{Path: "pkg/new.go", OldPath: "pkg/old.go", Kind: align.Modified},
		},
		{
			name: "copy",
			line: "C075\ta.go\tb.go",
			want: FileStatus{Path: "b.go", OldPath: "a.go", Kind: align.Modified},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNameStatus(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := parseNameStatus("M")
		assert.Error(t, err)
	})

	t.Run("rename missing destination", func(t *testing.T) {
		_, err := parseNameStatus("R100\tonly-old.go")
		assert.Error(t, err)
	})
}

func TestCLI_ChangedFiles(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git diff --name-status": []byte("M\tmain.go\nA\tnew.go\nR100\told.go\trenamed.go\n"),
		},
	}
	cli := NewCLI("git", "/repo", rec)

	files, err := cli.ChangedFiles(context.Background(), align.NewDiffID("HEAD", "abc"))
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, mkStatus("main.go", "", align.Modified), files[0])
	assert.Equal(t, mkStatus("new.go", "", align.Added), files[1])
	assert.Equal(t, mkStatus("renamed.go", "old.go", align.Modified), files[2])

	// Both refs are passed for a ref..ref diff.
	require.Len(t, rec.Commands, 1)
	assert.Equal(t, []string{"diff", "--name-status", "-M", "HEAD", "abc"}, rec.Commands[0].Args)
}

func TestCLI_ChangedFiles_WorkingTree(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git diff --name-status": []byte("M\tmain.go\n")},
	}
	cli := NewCLI("git", "/repo", rec)

	_, err := cli.ChangedFiles(context.Background(), align.NewDiffID("HEAD", align.WorkingTreeRef))
	require.NoError(t, err)

	// The working tree side has no ref argument.
	require.Len(t, rec.Commands, 1)
	assert.Equal(t, []string{"diff", "--name-status", "-M", "HEAD"}, rec.Commands[0].Args)
}

func mkStatus(path, oldPath string, kind align.ChangeKind) FileStatus {
	return FileStatus{Path: path, OldPath: oldPath, Kind: kind}
}

func TestCLI_FileDiff(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "main.go"), []byte("a\nB\nc\n"), 0o644))

	rawDiff := `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -2 +2 @@
-b
+B
`
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git diff -U0": []byte(rawDiff),
			"git show":     []byte("a\nb\nc\n"),
		},
	}
	cli := NewCLI("git", repo, rec)

	diff, err := cli.FileDiff(context.Background(),
		align.NewDiffID("HEAD", align.WorkingTreeRef),
		FileStatus{Path: "main.go", Kind: align.Modified})
	require.NoError(t, err)

	assert.Equal(t, 3, diff.LineCount(align.Before))
	assert.Equal(t, 3, diff.LineCount(align.After))
	assert.Equal(t, []string{"a", "B", "c"}, diff.SideLines(align.After))

	require.Len(t, diff.Alignments, 3)
	assert.False(t, diff.Alignments[0].Changed)
	assert.Equal(t, align.NewSpan(1, 2), diff.Alignments[1].Before)
	assert.Equal(t, align.NewSpan(1, 2), diff.Alignments[1].After)
	assert.True(t, diff.Alignments[1].Changed)
	require.NoError(t, align.Validate(diff.Alignments, 3, 3))
}

func TestCLI_FileDiff_BinaryFile(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "blob.bin"), []byte{0x00, 0x01, 0x02}, 0o644))

	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git diff -U0": []byte("Binary files a/blob.bin and b/blob.bin differ\n"),
			"git show":     {0x00, 0x01},
		},
	}
	cli := NewCLI("git", repo, rec)

	diff, err := cli.FileDiff(context.Background(),
		align.NewDiffID("HEAD", align.WorkingTreeRef),
		FileStatus{Path: "blob.bin", Kind: align.Modified})
	require.NoError(t, err)

	assert.True(t, diff.IsBinary())
	assert.Empty(t, diff.Alignments)
}

func TestCLI_FileDiff_AddedFile(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "new.go"), []byte("x\ny\n"), 0o644))

	rawDiff := `diff --git a/new.go b/new.go
new file mode 100644
index 0000000..2222222
--- /dev/null
+++ b/new.go
@@ -0,0 +1,2 @@
+x
+y
`
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git diff -U0": []byte(rawDiff)},
	}
	cli := NewCLI("git", repo, rec)

	diff, err := cli.FileDiff(context.Background(),
		align.NewDiffID("HEAD", align.WorkingTreeRef),
		FileStatus{Path: "new.go", Kind: align.Added})
	require.NoError(t, err)

	assert.Nil(t, diff.Before)
	require.Len(t, diff.Alignments, 1)
	assert.True(t, diff.Alignments[0].Changed)
	assert.Equal(t, align.NewSpan(0, 2), diff.Alignments[0].After)
}

func TestParseHunks(t *testing.T) {
	raw := []byte(`diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -3 +3 @@ func main() {
-	old line
+	new line
@@ -7,0 +8,2 @@ func helper() {
+	inserted one
+	inserted two
`)

	hunks, err := parseHunks(raw, "main.go")
	require.NoError(t, err)
	require.Len(t, hunks, 2)

	// @@ -3 +3 @@ is one line on each side, 1-indexed line 3.
	assert.Equal(t, hunk{oldStart: 2, oldLines: 1, newStart: 2, newLines: 1}, hunks[0])
	// @@ -7,0 +8,2 @@ inserts after old line 7, which is already the
	// 0-indexed insertion point.
	assert.Equal(t, hunk{oldStart: 7, oldLines: 0, newStart: 7, newLines: 2}, hunks[1])
}

func TestParseHunks_Empty(t *testing.T) {
	hunks, err := parseHunks([]byte("  \n"), "main.go")
	require.NoError(t, err)
	assert.Nil(t, hunks)
}

func TestParseHunks_OtherFileIgnored(t *testing.T) {
	raw := []byte(`diff --git a/other.go b/other.go
index 1111111..2222222 100644
--- a/other.go
+++ b/other.go
@@ -1 +1 @@
-a
+b
`)

	hunks, err := parseHunks(raw, "main.go")
	require.NoError(t, err)
	assert.Empty(t, hunks)
}

func TestHunkFromFragmentConversion(t *testing.T) {
	// End-to-end through alignmentsFromHunks: the parsed hunks must
	// produce a valid partition of the files they describe.
	raw := []byte(`diff --git a/f.txt b/f.txt
index 1111111..2222222 100644
--- a/f.txt
+++ b/f.txt
@@ -2,2 +2,3 @@
-b
-c
+B
+C
+C2
`)

	hunks, err := parseHunks(raw, "f.txt")
	require.NoError(t, err)
	require.Len(t, hunks, 1)

	got := alignmentsFromHunks(hunks, 4, 5)
	require.NoError(t, align.Validate(got, 4, 5))
	require.Len(t, got, 3)
	assert.Equal(t, align.NewSpan(1, 3), got[1].Before)
	assert.Equal(t, align.NewSpan(1, 4), got[1].After)
}
