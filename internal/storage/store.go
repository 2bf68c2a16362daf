package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/partviz/internal/config"
	"github.com/san-kum/partviz/internal/render"
)

const (
	metadataFile = "metadata.json"
	colorsFile   = "colors.yaml"
	artifactBase = "artifact"
)

var (
	ErrBadID    = errors.New("storage: invalid artifact id")
	ErrNotFound = errors.New("storage: artifact not found")
	ErrBadFile  = errors.New("storage: invalid artifact file")
)

// Store keeps rendered artifacts as <dir>/<id>/{metadata.json, artifact.<ext>, colors.yaml}.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	File        string    `json:"file"`
	ContentType string    `json:"content_type"`
	Created     time.Time `json:"created"`
	Bytes       int       `json:"bytes"`
	Species     []string  `json:"species,omitempty"`
}

// Save writes a and returns its id.
func (s *Store) Save(a render.Artifact) (string, error) {
	dir, err := s.dir(a.ID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	created := a.Created
	if created.IsZero() {
		created = time.Now()
	}
	meta := Metadata{
		ID:          a.ID,
		Name:        a.Name,
		Kind:        a.Kind,
		File:        artifactBase + a.Ext(),
		ContentType: a.ContentType(),
		Created:     created,
		Bytes:       len(a.Body),
		Species:     keys(a.Colors),
	}

	if err := os.WriteFile(filepath.Join(dir, meta.File), a.Body, 0644); err != nil {
		return "", err
	}
	if err := config.SaveColors(filepath.Join(dir, colorsFile), a.Colors); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return a.ID, nil
}

// Display saves a, so a Store can be used as a render.Sink.
func (s *Store) Display(_ context.Context, a render.Artifact) error {
	_, err := s.Save(a)
	return err
}

// List returns every stored artifact, oldest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	out := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	dir, err := s.dir(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Open returns the artifact body of id. The caller closes it.
func (s *Store) Open(id string) (io.ReadCloser, *Metadata, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, nil, err
	}
	if meta.File == "" || meta.File == "." || meta.File == ".." || strings.ContainsAny(meta.File, `/\`) {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadFile, meta.File)
	}
	f, err := os.Open(filepath.Join(s.baseDir, id, meta.File))
	if err != nil {
		return nil, nil, err
	}
	return f, meta, nil
}

// Artifact reads id back into a render.Artifact.
func (s *Store) Artifact(id string) (render.Artifact, error) {
	rc, meta, err := s.Open(id)
	if err != nil {
		return render.Artifact{}, err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return render.Artifact{}, err
	}
	colors, err := s.LoadColors(id)
	if err != nil {
		return render.Artifact{}, err
	}
	return render.Artifact{
		ID:      meta.ID,
		Name:    meta.Name,
		Kind:    meta.Kind,
		Created: meta.Created,
		Colors:  colors,
		Body:    body,
	}, nil
}

// LoadColors returns the color mapping saved with id.
func (s *Store) LoadColors(id string) (map[string]string, error) {
	dir, err := s.dir(id)
	if err != nil {
		return nil, err
	}
	return config.LoadColors(filepath.Join(dir, colorsFile))
}

func (s *Store) dir(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadID, id)
	}
	return filepath.Join(s.baseDir, id), nil
}

func keys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
