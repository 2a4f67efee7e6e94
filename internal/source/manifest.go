package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists question references in presentation-independent order.
type Manifest struct {
	Questions []string `yaml:"questions"`
}

// ParseManifest decodes a single-document YAML manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Manifest{}, fmt.Errorf("parse manifest: empty document")
		}
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Manifest{}, fmt.Errorf("parse manifest: multiple YAML documents are not supported")
		}
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}

	refs := make([]string, 0, len(m.Questions))
	seen := make(map[string]bool, len(m.Questions))
	for _, ref := range m.Questions {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		return Manifest{}, fmt.Errorf("parse manifest: no question references")
	}
	m.Questions = refs
	return m, nil
}

// Discover walks fsys and returns every .yaml or .yml file in lexical order,
// skipping the manifest itself.
func Discover(fsys fs.FS, manifest string) ([]string, error) {
	var refs []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if p == manifest {
			return nil
		}
		switch path.Ext(p) {
		case ".yaml", ".yml":
			refs = append(refs, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover questions: %w", err)
	}
	return refs, nil
}

// ResolveRefs returns the references to load. The manifest is fetched first;
// when it does not exist and fsys is non-nil, the references are discovered
// by walking fsys instead.
func ResolveRefs(ctx context.Context, f Fetcher, manifest string, fsys fs.FS) ([]string, error) {
	if manifest != "" {
		data, err := f.Fetch(ctx, manifest)
		switch {
		case err == nil:
			m, err := ParseManifest(data)
			if err != nil {
				return nil, err
			}
			return m.Questions, nil
		case !errors.Is(err, ErrNotFound) || fsys == nil:
			return nil, fmt.Errorf("manifest: %w", err)
		}
	}
	if fsys == nil {
		return nil, errors.New("no manifest and nothing to discover")
	}
	return Discover(fsys, manifest)
}
