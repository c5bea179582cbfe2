// Package resources stores crew reference uploads (vendor manuals, price
// sheets and the like) on local disk, grouped into named sections.
package resources

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/preserve/pkg/metrics"
)

// Known sections. Uploads outside this set are rejected.
const (
	SectionVRM     = "vrm"
	SectionCyprex  = "cyprex"
	SectionPricing = "pricing"
	SectionOther   = "other"
)

// Sections returns the known section names in display order.
func Sections() []string {
	return []string{SectionVRM, SectionCyprex, SectionPricing, SectionOther}
}

// Resource describes one stored upload.
type Resource struct {
	ID         string    `json:"id"`
	Section    string    `json:"section"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Store persists uploads under dir, one subdirectory per section. Files
// are named "<uuid>_<original name>" so repeated uploads never collide.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the upload to disk and returns its descriptor.
func (s *Store) Save(ctx context.Context, section, name string, r io.Reader) (*Resource, error) {
	section = strings.ToLower(strings.TrimSpace(section))
	if !validSection(section) {
		return nil, ErrUnknownSection
	}
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, ErrEmptyName
	}

	dir := filepath.Join(s.dir, section)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path := filepath.Join(dir, id+"_"+name)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	metrics.RecordResourceUpload(section)
	return &Resource{
		ID:         id,
		Section:    section,
		Name:       name,
		Size:       size,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// List returns the stored uploads for a section, or for all sections when
// section is empty. A section directory that does not exist yet simply
// contributes nothing.
func (s *Store) List(ctx context.Context, section string) ([]Resource, error) {
	section = strings.ToLower(strings.TrimSpace(section))

	sections := Sections()
	if section != "" {
		if !validSection(section) {
			return nil, ErrUnknownSection
		}
		sections = []string{section}
	}

	out := make([]Resource, 0)
	for _, sec := range sections {
		entries, err := os.ReadDir(filepath.Join(s.dir, sec))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			id, name, ok := strings.Cut(e.Name(), "_")
			if !ok {
				continue
			}
			out = append(out, Resource{
				ID:         id,
				Section:    sec,
				Name:       name,
				Size:       info.Size(),
				UploadedAt: info.ModTime().UTC(),
			})
		}
	}
	return out, nil
}

func validSection(section string) bool {
	switch section {
	case SectionVRM, SectionCyprex, SectionPricing, SectionOther:
		return true
	}
	return false
}
