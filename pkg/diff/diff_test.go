package diff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markconv/pkg/diff"
)

func numbered(count int, replace map[int]string) []byte {
	var builder strings.Builder
	for idx := 1; idx <= count; idx++ {
		if text, ok := replace[idx]; ok {
			builder.WriteString(text)
		} else {
			fmt.Fprintf(&builder, "line%d", idx)
		}
		builder.WriteByte('\n')
	}
	return []byte(builder.String())
}

func TestComputeIdentical(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diff.Compute("a", "b", nil, nil))
	assert.Nil(t, diff.Compute("a", "b", []byte("x\ny\n"), []byte("x\ny\n")))
	assert.Nil(t, diff.Compute("a", "b", []byte("x\r\ny\r\n"), []byte("x\ny\n")))
	assert.False(t, diff.Compute("a", "b", nil, nil).HasChanges())
	assert.Empty(t, diff.Compute("a", "b", nil, nil).String())
}

func TestComputeSingleChange(t *testing.T) {
	t.Parallel()

	got := diff.Compute("a/in.tex", "b/in.tex", []byte("hello\nworld\n"), []byte("hello\nearth\n"))
	require.True(t, got.HasChanges())

	want := "--- a/in.tex\n+++ b/in.tex\n@@ -1,2 +1,2 @@\n hello\n-world\n+earth\n"
	if d := cmp.Diff(want, got.String()); d != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, 1, got.Additions)
	assert.Equal(t, 1, got.Deletions)
}

func TestComputeFromEmpty(t *testing.T) {
	t.Parallel()

	got := diff.Compute("old", "new", nil, []byte("a\nb\n"))
	require.Len(t, got.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,2 @@", got.Hunks[0].Header())
	assert.Equal(t, 2, got.Additions)
	assert.Equal(t, 0, got.Deletions)
}

func TestComputeSeparateHunks(t *testing.T) {
	t.Parallel()

	oldText := numbered(20, nil)
	newText := numbered(20, map[int]string{2: "two", 18: "eighteen"})

	got := diff.Compute("old", "new", oldText, newText)
	require.Len(t, got.Hunks, 2)

	first := got.Hunks[0]
	assert.Equal(t, "@@ -1,5 +1,5 @@", first.Header())
	second := got.Hunks[1]
	assert.Equal(t, "@@ -15,6 +15,6 @@", second.Header())
	assert.Equal(t, "-", second.Lines[3].Prefix())
	assert.Equal(t, "line18", second.Lines[3].Content)
	assert.Equal(t, "+", second.Lines[4].Prefix())
	assert.Equal(t, "eighteen", second.Lines[4].Content)
}

func TestComputeMergesNearbyChanges(t *testing.T) {
	t.Parallel()

	got := diff.Compute("old", "new", numbered(20, nil), numbered(20, map[int]string{5: "five", 9: "nine"}))
	require.Len(t, got.Hunks, 1)
	assert.Equal(t, "@@ -2,11 +2,11 @@", got.Hunks[0].Header())
}

func TestComputeInsertionAndDeletion(t *testing.T) {
	t.Parallel()

	got := diff.Compute("old", "new", []byte("a\nb\nc\n"), []byte("a\nc\nd\n"))
	require.NotNil(t, got)

	out := got.String()
	assert.Contains(t, out, "-b\n")
	assert.Contains(t, out, "+d\n")
	assert.Contains(t, out, " a\n")
	assert.Contains(t, out, " c\n")
	assert.Equal(t, 1, got.Additions)
	assert.Equal(t, 1, got.Deletions)
}
