package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/rs/zerolog"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/logging"
	"github.com/tandemhq/tandem/pkg/executil"
)

// CLI is a Provider backed by the git executable.
type CLI struct {
	gitPath string
	repoDir string
	exec    executil.Executor
	log     zerolog.Logger
}

var _ Provider = (*CLI)(nil)

// NewCLI creates a git-backed provider for the repository at repoDir.
func NewCLI(gitPath, repoDir string, exec executil.Executor) *CLI {
	if gitPath == "" {
		gitPath = "git"
	}
	return &CLI{
		gitPath: gitPath,
		repoDir: repoDir,
		exec:    exec,
		log:     logging.Component("git"),
	}
}

// ChangedFiles lists the files changed between the two refs using
// --name-status with rename detection.
func (g *CLI) ChangedFiles(ctx context.Context, id align.DiffID) ([]FileStatus, error) {
	args := []string{"diff", "--name-status", "-M", id.Before}
	if !id.IsWorkingTree() {
		args = append(args, id.After)
	}

	out, err := g.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	var files []FileStatus
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		status, err := parseNameStatus(line)
		if err != nil {
			g.log.Warn().Str("line", line).Err(err).Msg("skipping unparsable status line")
			continue
		}
		files = append(files, status)
	}

	return files, nil
}

// parseNameStatus parses one line of `git diff --name-status` output.
func parseNameStatus(line string) (FileStatus, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return FileStatus{}, fmt.Errorf("malformed status line")
	}

	code := fields[0]
	switch {
	case strings.HasPrefix(code, "R"), strings.HasPrefix(code, "C"):
		if len(fields) < 3 {
			return FileStatus{}, fmt.Errorf("rename without destination")
		}
		return FileStatus{Path: fields[2], OldPath: fields[1], Kind: align.Modified}, nil
	case code == "A":
		return FileStatus{Path: fields[1], Kind: align.Added}, nil
	case code == "D":
		return FileStatus{Path: fields[1], Kind: align.Deleted}, nil
	default:
		return FileStatus{Path: fields[1], Kind: align.Modified}, nil
	}
}

// FileDiff builds the full diff for one file. Hunks come from a
// zero-context diff so the alignment boundaries are precise, not padded
// with surrounding context.
func (g *CLI) FileDiff(ctx context.Context, id align.DiffID, status FileStatus) (*align.FileDiff, error) {
	oldPath := status.OldPath
	if oldPath == "" {
		oldPath = status.Path
	}

	args := []string{"diff", "-U0", "-M", id.Before}
	if !id.IsWorkingTree() {
		args = append(args, id.After)
	}
	args = append(args, "--", oldPath, status.Path)

	raw, err := g.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s: %w", status.Path, err)
	}

	var before, after *align.File
	if status.Kind != align.Added {
		content, err := g.loadContent(ctx, id.Before, oldPath, false)
		if err != nil {
			return nil, err
		}
		before = &align.File{Path: oldPath, Content: content}
	}
	if status.Kind != align.Deleted {
		content, err := g.loadContent(ctx, id.After, status.Path, id.IsWorkingTree())
		if err != nil {
			return nil, err
		}
		after = &align.File{Path: status.Path, Content: content}
	}

	diff := &align.FileDiff{Before: before, After: after}
	if diff.IsBinary() {
		return diff, nil
	}

	hunks, err := parseHunks(raw, status.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff for %s: %w", status.Path, err)
	}

	diff.Alignments = alignmentsFromHunks(hunks, diff.LineCount(align.Before), diff.LineCount(align.After))
	if err := align.Validate(diff.Alignments, diff.LineCount(align.Before), diff.LineCount(align.After)); err != nil {
		return nil, fmt.Errorf("inconsistent alignments for %s: %w", status.Path, err)
	}

	return diff, nil
}

// parseHunks extracts 0-indexed hunks from raw unified diff output.
func parseHunks(raw []byte, path string) ([]hunk, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	files, _, err := gitdiff.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	var hunks []hunk
	for _, f := range files {
		if f.NewName != path && f.OldName != path {
			continue
		}
		if f.IsBinary {
			return nil, nil
		}
		for _, frag := range f.TextFragments {
			hunks = append(hunks, hunkFromFragment(frag))
		}
	}

	return hunks, nil
}

// hunkFromFragment converts a fragment header to 0-indexed positions.
// Git's start is 1-indexed when the side has lines; a zero-length side
// names the line the change sits after, which is already the 0-indexed
// insertion point.
func hunkFromFragment(f *gitdiff.TextFragment) hunk {
	h := hunk{
		oldStart: int(f.OldPosition),
		oldLines: int(f.OldLines),
		newStart: int(f.NewPosition),
		newLines: int(f.NewLines),
	}
	if f.OldLines > 0 {
		h.oldStart--
	}
	if f.NewLines > 0 {
		h.newStart--
	}
	return h
}

// loadContent reads one side of a file, from the working tree or from a
// ref.
func (g *CLI) loadContent(ctx context.Context, ref, path string, workingTree bool) (align.FileContent, error) {
	var data []byte
	var err error

	if workingTree {
		data, err = os.ReadFile(filepath.Join(g.repoDir, path))
		if os.IsNotExist(err) {
			return align.FileContent{}, nil
		}
		if err != nil {
			return align.FileContent{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		data, err = g.run(ctx, "show", ref+":"+path)
		if err != nil {
			return align.FileContent{}, fmt.Errorf("failed to load %s at %s: %w", path, ref, err)
		}
	}

	if align.IsBinaryData(data) {
		return align.BinaryContent(), nil
	}
	return align.TextContent(string(data)), nil
}

// run executes git with the given arguments in the repository directory.
func (g *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	g.log.Debug().Strs("args", args).Msg("running git")
	return g.exec.RunDir(ctx, g.repoDir, g.gitPath, args...)
}
