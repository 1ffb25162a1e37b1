package favorites

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/hstr/internal/source"
)

func newManager(t *testing.T, content string, opts Options) *Manager {
	t.Helper()
	opts.Path = filepath.Join(t.TempDir(), ".hstr_favorites")
	if content != "" {
		require.NoError(t, os.WriteFile(opts.Path, []byte(content), 0o644))
	}
	m := New(opts)
	require.NoError(t, m.Load())
	return m
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	m := newManager(t, "", Options{})

	assert.Zero(t, m.Len())
	_, err := os.Stat(m.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_DedupAndComments(t *testing.T) {
	m := newManager(t, "a\n# note\nb\na\n", Options{SkipComments: true})

	assert.Equal(t, []string{"a", "b"}, m.Lines())
}

func TestLoad_CommentsKeptByDefault(t *testing.T) {
	m := newManager(t, "a\n# note\n", Options{})

	assert.Equal(t, []string{"a", "# note"}, m.Lines())
}

func TestChoose_RotatesToFront(t *testing.T) {
	m := newManager(t, "a\nb\nc\n", Options{})

	require.NoError(t, m.Choose("b"))

	assert.Equal(t, []string{"b", "a", "c"}, m.Lines())
	assert.Equal(t, "b\na\nc\n", readFile(t, m.Path()))
}

func TestChoose_LastElement(t *testing.T) {
	m := newManager(t, "a\nb\nc\n", Options{})

	require.NoError(t, m.Choose("c"))

	assert.Equal(t, []string{"c", "a", "b"}, m.Lines())
}

func TestChoose_StaticOrAbsentIsNoop(t *testing.T) {
	static := newManager(t, "a\nb\nc\n", Options{Static: true})
	require.NoError(t, static.Choose("c"))
	assert.Equal(t, []string{"a", "b", "c"}, static.Lines())

	m := newManager(t, "a\nb\n", Options{})
	require.NoError(t, m.Choose("zzz"))
	assert.Equal(t, []string{"a", "b"}, m.Lines())
}

func TestAdd_AppendsAndPromotes(t *testing.T) {
	m := newManager(t, "a\nb\n", Options{})

	require.NoError(t, m.Add("make test"))

	assert.Equal(t, []string{"make test", "a", "b"}, m.Lines())
	assert.Equal(t, "make test\na\nb\n", readFile(t, m.Path()))
}

func TestAdd_ExistingEntryIsNotDuplicated(t *testing.T) {
	m := newManager(t, "a\nb\n", Options{})

	require.NoError(t, m.Add("b"))

	assert.Equal(t, []string{"b", "a"}, m.Lines())
}

func TestAdd_StaticAppends(t *testing.T) {
	m := newManager(t, "a\n", Options{Static: true})

	require.NoError(t, m.Add("b"))

	assert.Equal(t, []string{"a", "b"}, m.Lines())
}

func TestAdd_CreatesFile(t *testing.T) {
	m := newManager(t, "", Options{})

	require.NoError(t, m.Add("ls -la"))

	assert.Equal(t, "ls -la\n", readFile(t, m.Path()))
}

func TestTag_PromotesAndSuffixes(t *testing.T) {
	m := newManager(t, "a\nb\nc\n", Options{})

	require.NoError(t, m.Tag("c", "deploy"))

	assert.Equal(t, []string{"c  @deploy", "a", "b"}, m.Lines())
	assert.True(t, m.Contains("c  @deploy"))
	assert.False(t, m.Contains("c"))
	assert.Equal(t, "c  @deploy\na\nb\n", readFile(t, m.Path()))
}

func TestTag_StaticTagsInPlace(t *testing.T) {
	m := newManager(t, "a\nb\nc\n", Options{Static: true})

	require.NoError(t, m.Tag("b", "x"))

	assert.Equal(t, []string{"a", "b  @x", "c"}, m.Lines())
}

func TestTag_EmptyLabelOnlyPromotes(t *testing.T) {
	m := newManager(t, "a\nb\n", Options{})

	require.NoError(t, m.Tag("b", "  "))

	assert.Equal(t, []string{"b", "a"}, m.Lines())
}

func TestRemove_AllOccurrences(t *testing.T) {
	m := newManager(t, "", Options{})
	m.src = source.New("favorites", source.Policy{ReorderOnChoice: true}, nil)
	m.src.Reset([]string{"a", "b", "a", "c"})

	ok, err := m.Remove("a")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, m.Lines())
	assert.Equal(t, "b\nc\n", readFile(t, m.Path()))
}

func TestRemove_AbsentEntry(t *testing.T) {
	m := newManager(t, "a\nb\n", Options{})

	ok, err := m.Remove("zzz")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Lines())
}

func TestRemove_EmptyList(t *testing.T) {
	m := newManager(t, "", Options{})

	ok, err := m.Remove("a")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove_LastEntryTruncatesFile(t *testing.T) {
	m := newManager(t, "a\n", Options{})

	_, err := m.Remove("a")
	require.NoError(t, err)

	assert.Equal(t, "", readFile(t, m.Path()))
}

func TestSave_ErrorIsReported(t *testing.T) {
	m := New(Options{Path: filepath.Join(t.TempDir(), "missing", "favorites")})
	require.NoError(t, m.Load())

	err := m.Add("a")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save favorites")
}

// unreadableFavorites writes content to a favorites file the test process
// cannot read back.
func unreadableFavorites(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".hstr_favorites")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o200))
	if _, err := os.ReadFile(path); err == nil {
		t.Skip("file permissions are not enforced for this user")
	}
	return path
}

func TestUnreadableFile_MutationsKeepFile(t *testing.T) {
	path := unreadableFavorites(t, "keep-one\nkeep-two\n")
	m := New(Options{Path: path})
	require.Error(t, m.Load())

	assert.Error(t, m.Add("new"))
	assert.Error(t, m.Choose("keep-two"))
	assert.Error(t, m.Tag("keep-one", "label"))
	ok, err := m.Remove("keep-one")
	assert.Error(t, err)
	assert.False(t, ok)

	require.NoError(t, os.Chmod(path, 0o600))
	assert.Equal(t, "keep-one\nkeep-two\n", readFile(t, path))
}

func TestUnreadableFile_AddReloadsOnceReadable(t *testing.T) {
	path := unreadableFavorites(t, "keep-one\nkeep-two\n")
	m := New(Options{Path: path})
	require.Error(t, m.Load())

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, m.Add("new"))

	assert.Equal(t, "new\nkeep-one\nkeep-two\n", readFile(t, path))
}

func TestLoadError_AddDoesNotSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hstr_favorites")
	require.NoError(t, os.Mkdir(path, 0o755))
	m := New(Options{Path: path})
	require.Error(t, m.Load())

	err := m.Add("new")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load favorites")
	assert.Zero(t, m.Len())
}

func TestLabel(t *testing.T) {
	text, label, ok := Label("kubectl get pods  @k8s")
	assert.True(t, ok)
	assert.Equal(t, "kubectl get pods", text)
	assert.Equal(t, "k8s", label)

	_, _, ok = Label("plain")
	assert.False(t, ok)
}

func TestTrimLabel(t *testing.T) {
	assert.Equal(t, "a b", TrimLabel(" a\nb "))
	long := strings.Repeat("é", 200)
	got := TrimLabel(long)
	assert.LessOrEqual(t, len(got), MaxLabelLen)
	assert.Equal(t, strings.Repeat("é", 127), got)
}
