package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/afero"
)

// On-disk layout under the root:
//
//	<owner>/<name>/repository.json   repository metadata
//	<owner>/<name>/files/<path>      document content
//	<owner>/<name>/revisions.jsonl   one JSON revision per line
const (
	fileRepositoryMeta = "repository.json"
	fileRevisions      = "revisions.jsonl"
	dirFiles           = "files"
)

// FileStorage keeps repositories as plain directories on an afero
// filesystem. It implements both [DocumentRepository] and
// [RepositoryRegistry]. Writes are serialised by one mutex, which makes the
// read-compare-write of PutDocument atomic within the process.
type FileStorage struct {
	fs     afero.Fs
	mu     sync.Mutex
	logger *logger.Logger
}

// NewFileStorage returns a FileStorage rooted at the top of fsys. Use
// afero.NewBasePathFs to confine it to a directory.
func NewFileStorage(fsys afero.Fs, logger *logger.Logger) *FileStorage {
	return &FileStorage{fs: fsys, logger: logger}
}

// cleanPath rejects absolute and escaping paths and returns the cleaned
// relative form.
func cleanPath(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return cleaned, nil
}

func (s *FileStorage) repoDir(fullName string) (string, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") || owner == ".." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrRepositoryNotFound, fullName)
	}
	return path.Join(owner, name), nil
}

func (s *FileStorage) documentFile(repository, docPath string) (string, error) {
	dir, err := s.repoDir(repository)
	if err != nil {
		return "", err
	}
	cleaned, err := cleanPath(docPath)
	if err != nil {
		return "", err
	}
	return path.Join(dir, dirFiles, cleaned), nil
}

// EnsureRepository implements [RepositoryRegistry].
func (s *FileStorage) EnsureRepository(ctx context.Context, repo models.Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.repoDir(repo.FullName)
	if err != nil {
		return err
	}
	if err = s.fs.MkdirAll(path.Join(dir, dirFiles), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	meta, err := json.Marshal(models.Repository{FullName: repo.FullName, Name: repo.Name, Private: repo.Private})
	if err != nil {
		return err
	}
	if err = afero.WriteFile(s.fs, path.Join(dir, fileRepositoryMeta), meta, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// GetRepository implements [RepositoryRegistry].
func (s *FileStorage) GetRepository(ctx context.Context, fullName string) (models.Repository, error) {
	dir, err := s.repoDir(fullName)
	if err != nil {
		return models.Repository{}, err
	}

	raw, err := afero.ReadFile(s.fs, path.Join(dir, fileRepositoryMeta))
	if errors.Is(err, fs.ErrNotExist) {
		return models.Repository{}, ErrRepositoryNotFound
	}
	if err != nil {
		return models.Repository{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var repo models.Repository
	if err = json.Unmarshal(raw, &repo); err != nil {
		return models.Repository{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return repo, nil
}

// GetDocument implements [DocumentRepository].
func (s *FileStorage) GetDocument(ctx context.Context, repository, docPath string) (models.StoredDocument, error) {
	file, err := s.documentFile(repository, docPath)
	if err != nil {
		return models.StoredDocument{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blocked, err := s.blockedPath(repository, file)
	if err != nil {
		return models.StoredDocument{}, err
	}
	if blocked {
		return models.StoredDocument{}, ErrDocumentNotFound
	}

	return s.readDocument(repository, docPath, file)
}

// blockedPath reports whether file cannot hold a document because it is a
// directory or one of its parents is a document.
func (s *FileStorage) blockedPath(repository, file string) (bool, error) {
	dir, err := s.repoDir(repository)
	if err != nil {
		return false, err
	}
	root := path.Join(dir, dirFiles)
	parts := strings.Split(strings.TrimPrefix(file, root+"/"), "/")

	current := root
	for i, part := range parts {
		current = path.Join(current, part)
		info, err := s.fs.Stat(current)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		isLast := i == len(parts)-1
		if isLast && info.IsDir() {
			return true, nil
		}
		if !isLast && !info.IsDir() {
			return true, nil
		}
	}
	return false, nil
}

func (s *FileStorage) readDocument(repository, docPath, file string) (models.StoredDocument, error) {
	info, err := s.fs.Stat(file)
	if errors.Is(err, fs.ErrNotExist) {
		return models.StoredDocument{}, ErrDocumentNotFound
	}
	if err != nil {
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if info.IsDir() {
		return models.StoredDocument{}, ErrDocumentNotFound
	}

	content, err := afero.ReadFile(s.fs, file)
	if err != nil {
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return models.StoredDocument{
		Repository: repository,
		Path:       docPath,
		Content:    content,
		SHA:        models.Version(utils.GitBlobSHA(content)),
		UpdatedAt:  info.ModTime().UTC(),
	}, nil
}

// PutDocument implements [DocumentRepository]. The stored SHA is always
// recomputed from content on read, so doc.SHA must be the blob SHA of
// doc.Content.
func (s *FileStorage) PutDocument(ctx context.Context, doc models.StoredDocument, expected models.Version, rev models.Revision) (models.StoredDocument, error) {
	file, err := s.documentFile(doc.Repository, doc.Path)
	if err != nil {
		return models.StoredDocument{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blocked, err := s.blockedPath(doc.Repository, file)
	if err != nil {
		return models.StoredDocument{}, err
	}
	if blocked {
		return models.StoredDocument{}, fmt.Errorf("%w: %q collides with an existing document or directory", ErrInvalidPath, doc.Path)
	}

	current, err := s.readDocument(doc.Repository, doc.Path, file)
	exists := err == nil
	if err != nil && !errors.Is(err, ErrDocumentNotFound) {
		return models.StoredDocument{}, err
	}

	switch {
	case expected.IsAbsent() && exists:
		return models.StoredDocument{}, ErrDocumentExists
	case !expected.IsAbsent() && !exists:
		return models.StoredDocument{}, ErrDocumentNotFound
	case !expected.IsAbsent() && current.SHA != expected:
		return models.StoredDocument{}, ErrVersionConflict
	}

	if err = s.fs.MkdirAll(path.Dir(file), 0o755); err != nil {
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if err = afero.WriteFile(s.fs, file, doc.Content, 0o644); err != nil {
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if err = s.appendRevision(rev); err != nil {
		s.logger.Err(err).
			Str("func", "FileStorage.PutDocument").
			Str("repository", doc.Repository).
			Str("path", doc.Path).
			Msg("document written but revision not recorded")
	}

	return doc, nil
}

func (s *FileStorage) appendRevision(rev models.Revision) error {
	dir, err := s.repoDir(rev.Repository)
	if err != nil {
		return err
	}

	line, err := json.Marshal(rev)
	if err != nil {
		return err
	}

	f, err := s.fs.OpenFile(path.Join(dir, fileRevisions), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// ListRevisions implements [DocumentRepository].
func (s *FileStorage) ListRevisions(ctx context.Context, repository, docPath string, limit int) ([]models.Revision, error) {
	dir, err := s.repoDir(repository)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	raw, err := afero.ReadFile(s.fs, path.Join(dir, fileRevisions))
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Revision{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var all []models.Revision
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		var rev models.Revision
		if err = json.Unmarshal(scanner.Bytes(), &rev); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if rev.Path == docPath {
			all = append(all, rev)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	// newest first
	revisions := make([]models.Revision, 0, limit)
	for i := len(all) - 1; i >= 0 && len(revisions) < limit; i-- {
		revisions = append(revisions, all[i])
	}
	return revisions, nil
}
