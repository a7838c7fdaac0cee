package gitlab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

func TestCountPatchLines(t *testing.T) {
	patch := strings.Join([]string{
		"--- a/main.go",
		"+++ b/main.go",
		"@@ -1,3 +1,4 @@",
		" package main",
		"+import \"fmt\"",
		"+",
		"-func old() {}",
		" func main() {}",
	}, "\n")

	insertions, deletions := countPatchLines(patch)
	assert.Equal(t, 2, insertions)
	assert.Equal(t, 1, deletions)
}

func TestCountPatchLinesEmpty(t *testing.T) {
	insertions, deletions := countPatchLines("")
	assert.Zero(t, insertions)
	assert.Zero(t, deletions)
}

func TestChangeType(t *testing.T) {
	assert.Equal(t, "added", changeType(&gitlab.Diff{NewFile: true}))
	assert.Equal(t, "removed", changeType(&gitlab.Diff{DeletedFile: true}))
	assert.Equal(t, "renamed", changeType(&gitlab.Diff{RenamedFile: true}))
	assert.Equal(t, "modified", changeType(&gitlab.Diff{}))
}

func TestTruncateDiff(t *testing.T) {
	patch := strings.Repeat("x", 50)

	got, truncated := truncateDiff(patch, 10)
	assert.True(t, truncated)
	assert.Equal(t, strings.Repeat("x", 10)+"\n... [truncated]", got)

	got, truncated = truncateDiff(patch, 100)
	assert.False(t, truncated)
	assert.Equal(t, patch, got)

	// Zero limit disables truncation
	got, truncated = truncateDiff(patch, 0)
	assert.False(t, truncated)
	assert.Equal(t, patch, got)
}
