package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/parser"
)

var ErrInvalidEncoding = errors.New("document is not valid UTF-8")

// Source tells which link of the fallback chain produced a question set.
type Source string

const (
	SourceDirectory Source = "directory"
	SourceLegacy    Source = "legacy"
	SourceBuiltin   Source = "builtin"
)

// Snapshot is the result of one extraction pass.
type Snapshot struct {
	Source    Source
	Documents int
	Questions []entities.Question
}

// QuestionRepositoryConfig locates the question documents.
type QuestionRepositoryConfig struct {
	DataDir    string   // directory with one document per slide
	LegacyPath string   // single document used when the directory yields nothing
	Extensions []string // recognized document extensions, e.g. ".md"
}

// QuestionRepository reads question documents on every call. Nothing is cached.
type QuestionRepository struct {
	fs  afero.Fs
	cfg QuestionRepositoryConfig
}

// NewQuestionRepository creates a repository over fs.
func NewQuestionRepository(fs afero.Fs, cfg QuestionRepositoryConfig) *QuestionRepository {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".md"}
	}
	return &QuestionRepository{fs: fs, cfg: cfg}
}

// Load resolves the question set: the documents directory if it yields at
// least one question, else the legacy document, else the built-in dataset.
// A document that cannot be read or decoded fails the whole call.
func (r *QuestionRepository) Load(ctx context.Context) (*Snapshot, error) {
	ok, err := r.isDir(r.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if ok {
		snap, err := r.loadDirectory(ctx)
		if err != nil {
			return nil, err
		}
		if len(snap.Questions) > 0 {
			return snap, nil
		}
	}

	if r.cfg.LegacyPath != "" {
		exists, err := afero.Exists(r.fs, r.cfg.LegacyPath)
		if err != nil {
			return nil, fmt.Errorf("stat legacy document: %w", err)
		}
		if exists {
			content, err := r.readDocument(r.cfg.LegacyPath)
			if err != nil {
				return nil, err
			}
			questions := parser.Aggregate([]parser.DocumentResult{{
				Name:      filepath.Base(r.cfg.LegacyPath),
				Questions: parser.Parse(content, parser.CategoryGeneral),
			}})
			return &Snapshot{Source: SourceLegacy, Documents: 1, Questions: questions}, nil
		}
	}

	return &Snapshot{Source: SourceBuiltin, Questions: BuiltinQuestions()}, nil
}

// ListDocuments returns the document names of the data directory in
// processing order.
func (r *QuestionRepository) ListDocuments() ([]string, error) {
	entries, err := afero.ReadDir(r.fs, r.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !r.hasDocumentExtension(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	parser.SortNames(names)
	return names, nil
}

// loadDirectory extracts all documents in parallel and renumbers the
// concatenation in document order.
func (r *QuestionRepository) loadDirectory(ctx context.Context) (*Snapshot, error) {
	names, err := r.ListDocuments()
	if err != nil {
		return nil, err
	}

	results := make([]parser.DocumentResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := r.readDocument(filepath.Join(r.cfg.DataDir, name))
			if err != nil {
				return err
			}
			results[i] = parser.DocumentResult{
				Name:      name,
				Questions: parser.Parse(content, parser.CategoryFor(name)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		Source:    SourceDirectory,
		Documents: len(names),
		Questions: parser.Aggregate(results),
	}, nil
}

func (r *QuestionRepository) readDocument(path string) (string, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read document %s: %w", path, ErrInvalidEncoding)
	}
	return string(data), nil
}

func (r *QuestionRepository) isDir(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	ok, err := afero.DirExists(r.fs, path)
	if err != nil {
		return false, fmt.Errorf("stat data dir: %w", err)
	}
	return ok, nil
}

func (r *QuestionRepository) hasDocumentExtension(name string) bool {
	for _, ext := range r.cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
