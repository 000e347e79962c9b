// Package store persists catalog output documents and the refresh run log.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/modelwatch/bedrock-catalog/internal/betascan"
	"github.com/modelwatch/bedrock-catalog/internal/catalog"
)

// Default document filenames inside the output directory.
const (
	ModelsFile   = "models.json"
	ProfilesFile = "profiles.json"
	BetaFile     = "beta_models.json"
)

// JSONStore writes the catalog documents into a directory.
type JSONStore struct {
	dir string
}

// NewJSONStore creates the output directory if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "store: create output dir %s", dir)
	}
	return &JSONStore{dir: dir}, nil
}

// WriteSnapshot persists the models and profiles documents. Both documents
// are fully serialized before anything touches disk, and each write is
// atomic, so a failed run never leaves a partial catalog behind.
func (s *JSONStore) WriteSnapshot(snap *catalog.Snapshot) error {
	if err := writeJSON(filepath.Join(s.dir, ModelsFile), snap.Models); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.dir, ProfilesFile), snap.Profiles)
}

// WriteBeta persists the beta model list.
func (s *JSONStore) WriteBeta(models []betascan.Model) error {
	if models == nil {
		models = []betascan.Model{}
	}
	return writeJSON(filepath.Join(s.dir, BetaFile), models)
}

// ReadModels loads a previously written models document.
func ReadModels(path string) ([]catalog.ModelRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read models %s", path)
	}
	var models []catalog.ModelRecord
	if err := json.Unmarshal(raw, &models); err != nil {
		return nil, eris.Wrapf(err, "store: decode models %s", path)
	}
	return models, nil
}

// writeJSON marshals v indented and writes it via temp file + rename so a
// crash mid-write cannot corrupt an existing document.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "store: marshal %s", path)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return eris.Wrapf(err, "store: create temp for %s", path)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return eris.Wrapf(err, "store: write temp for %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return eris.Wrapf(err, "store: close temp for %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return eris.Wrapf(err, "store: rename %s", path)
	}
	return nil
}
