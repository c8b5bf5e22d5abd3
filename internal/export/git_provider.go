// Package export pushes the asset tree to version control. The git
// invocation is an opaque external command: success and failure pass
// through verbatim, with no retry and no partial-state cleanup.
package export

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func NewGitExporter(workdir, remote, branch string) *GitExporter {
	return &GitExporter{workdir: workdir, remote: remote, branch: branch}
}

type GitExporter struct {
	workdir string
	remote  string
	branch  string
}

// Export stages everything under the asset root, commits with the given
// message and pushes. The combined output of the three commands is returned
// either way so callers can report it as-is.
func (g *GitExporter) Export(ctx context.Context, message string) (string, error) {
	var out strings.Builder

	steps := [][]string{
		{"add", "-A"},
		{"commit", "-m", message},
		{"push", g.remote, g.branch},
	}
	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = g.workdir
		b, err := cmd.CombinedOutput()
		out.Write(b)
		if err != nil {
			return out.String(), fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(b)))
		}
	}
	return out.String(), nil
}
