package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dataDir    = "data"
	legacyPath = "questions.md"
)

func newTestRepo(fs afero.Fs) *QuestionRepository {
	return NewQuestionRepository(fs, QuestionRepositoryConfig{
		DataDir:    dataDir,
		LegacyPath: legacyPath,
		Extensions: []string{".md"},
	})
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func slideDoc(code string) string {
	return "**" + code + "**\nQ " + code + "?\nA) one\nB) two\nCorrect Answer: B\n"
}

func TestLoadDirectoryOrdersByEmbeddedNumber(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, filepath.Join(dataDir, "s10.md"), slideDoc("SN10-1"))
	writeFile(t, fs, filepath.Join(dataDir, "s2.md"), slideDoc("SN2-1"))
	writeFile(t, fs, filepath.Join(dataDir, "s1.md"), slideDoc("SN1-1")+"\n---\n"+slideDoc("SN1-2"))
	writeFile(t, fs, filepath.Join(dataDir, "notes.txt"), slideDoc("SN99-1"))
	writeFile(t, fs, legacyPath, "## Soru 1\n**Soru:** X?\n- A) a\n**Doğru Cevap:** A")

	snap, err := newTestRepo(fs).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceDirectory, snap.Source)
	assert.Equal(t, 3, snap.Documents)
	require.Len(t, snap.Questions, 4)

	wantCodes := []string{"SN1-1", "SN1-2", "SN2-1", "SN10-1"}
	wantCategories := []string{"Slayt 1", "Slayt 1", "Slayt 2", "Slayt 10"}
	for i, q := range snap.Questions {
		assert.Equal(t, i+1, q.SequenceID)
		assert.Equal(t, wantCodes[i], q.Code)
		assert.Equal(t, wantCategories[i], q.Category)
	}
}

func TestLoadFallsBackToLegacyDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	// A directory that yields nothing does not count.
	writeFile(t, fs, filepath.Join(dataDir, "s1.md"), "no questions here")
	writeFile(t, fs, legacyPath, "# Sorular\n\n## Soru 1\n**Soru:** X?\n- A) one\n- B) two\n**Doğru Cevap:** B\n")

	snap, err := newTestRepo(fs).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceLegacy, snap.Source)
	require.Len(t, snap.Questions, 1)
	assert.Equal(t, 1, snap.Questions[0].SequenceID)
	assert.Equal(t, "Genel", snap.Questions[0].Category)
	assert.Equal(t, 1, snap.Questions[0].CorrectIndex)
}

func TestLoadLegacyEmptyDoesNotFallBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, filepath.Join(dataDir, "s1.md"), "no questions here")
	// The only block has no option, so nothing is extracted.
	writeFile(t, fs, legacyPath, "## Soru 1\n**Soru:** X?\n**Doğru Cevap:** A\n")

	snap, err := newTestRepo(fs).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceLegacy, snap.Source)
	assert.Equal(t, 1, snap.Documents)
	assert.Empty(t, snap.Questions)
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	snap, err := newTestRepo(afero.NewMemMapFs()).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceBuiltin, snap.Source)
	assert.Equal(t, BuiltinQuestions(), snap.Questions)
}

func TestLoadRejectsInvalidEncoding(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, filepath.Join(dataDir, "s1.md"), slideDoc("SN1-1"))
	writeFile(t, fs, filepath.Join(dataDir, "s2.md"), "\xff\xfe broken")

	_, err := newTestRepo(fs).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

var errDiskFailure = errors.New("disk failure")

// failingFs fails to open one path.
type failingFs struct {
	afero.Fs
	path string
}

func (f failingFs) Open(name string) (afero.File, error) {
	if filepath.Clean(name) == filepath.Clean(f.path) {
		return nil, &os.PathError{Op: "open", Path: name, Err: errDiskFailure}
	}
	return f.Fs.Open(name)
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.Clean(name) == filepath.Clean(f.path) {
		return nil, &os.PathError{Op: "open", Path: name, Err: errDiskFailure}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestLoadPropagatesReadErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, filepath.Join(dataDir, "s1.md"), slideDoc("SN1-1"))
	writeFile(t, mem, filepath.Join(dataDir, "s2.md"), slideDoc("SN2-1"))

	fs := failingFs{Fs: mem, path: filepath.Join(dataDir, "s2.md")}

	_, err := newTestRepo(fs).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFailure)
}

func TestLoadIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, filepath.Join(dataDir, "s1.md"), slideDoc("SN1-1"))
	writeFile(t, fs, filepath.Join(dataDir, "s3.md"), slideDoc("SN3-1"))

	repo := newTestRepo(fs)
	first, err := repo.Load(context.Background())
	require.NoError(t, err)
	second, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoadSeesDocumentEdits(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, filepath.Join(dataDir, "s1.md"), slideDoc("SN1-1"))

	repo := newTestRepo(fs)
	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Questions, 1)

	writeFile(t, fs, filepath.Join(dataDir, "s1.md"), slideDoc("SN1-1")+"\n---\n"+slideDoc("SN1-2"))

	snap, err = repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Questions, 2)
}

func TestListDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, filepath.Join(dataDir, "s10.md"), "")
	writeFile(t, fs, filepath.Join(dataDir, "s9.md"), "")
	writeFile(t, fs, filepath.Join(dataDir, "readme.txt"), "")
	require.NoError(t, fs.MkdirAll(filepath.Join(dataDir, "s1.md.d"), 0o755))

	names, err := newTestRepo(fs).ListDocuments()
	require.NoError(t, err)
	assert.Equal(t, []string{"s9.md", "s10.md"}, names)
}

func TestBuiltinQuestionsReturnsCopy(t *testing.T) {
	first := BuiltinQuestions()
	first[0].Options[0] = "changed"

	assert.NotEqual(t, "changed", BuiltinQuestions()[0].Options[0])
	assert.Len(t, BuiltinQuestions(), 3)
}
