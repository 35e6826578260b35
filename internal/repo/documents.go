package repo

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"magazyn/internal/model"
	"magazyn/internal/storage"
)

// Documents przechowuje metadane dokumentów w data/documents.json.
// Same pliki leżą w katalogu dokumentów i są sprzątane przez handler.
type Documents struct {
	mu   sync.Mutex
	path string
	log  *zap.SugaredLogger
}

func NewDocuments(dataDir string, log *zap.SugaredLogger) *Documents {
	return &Documents{path: filepath.Join(dataDir, "documents.json"), log: log}
}

func (r *Documents) read() ([]model.Document, error) {
	documents := []model.Document{}
	if err := storage.ReadCollection(r.path, &documents); err != nil {
		r.log.Errorw("reading documents file", "error", err)
		return nil, err
	}
	return documents, nil
}

// List returns all document metadata.
func (r *Documents) List() ([]model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Get returns one document by id.
func (r *Documents) Get(id int) (model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	documents, err := r.read()
	if err != nil {
		return model.Document{}, err
	}
	for _, d := range documents {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Document{}, ErrNotFound
}

// NextID reserves nothing; it just reports the id the next Add would use.
func (r *Documents) NextID() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	documents, err := r.read()
	if err != nil {
		return 0, err
	}
	ids := make([]int, len(documents))
	for i, d := range documents {
		ids[i] = d.ID
	}
	return nextID(ids), nil
}

// AddBatch appends already-saved documents in one file write.
func (r *Documents) AddBatch(docs []model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	documents, err := r.read()
	if err != nil {
		return err
	}
	documents = append(documents, docs...)
	if err := storage.WriteCollection(r.path, documents); err != nil {
		r.log.Errorw("writing documents file", "error", err)
		return err
	}
	return nil
}

// HasCategory reports whether any document references the category.
func (r *Documents) HasCategory(categoryID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	documents, err := r.read()
	if err != nil {
		return false, err
	}
	for _, d := range documents {
		if d.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes metadata by id and returns the removed record so the
// caller can unlink the disk file.
func (r *Documents) Delete(id int) (model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	documents, err := r.read()
	if err != nil {
		return model.Document{}, err
	}
	for i, d := range documents {
		if d.ID == id {
			documents = append(documents[:i], documents[i+1:]...)
			if err := storage.WriteCollection(r.path, documents); err != nil {
				r.log.Errorw("writing documents file", "error", err)
				return model.Document{}, err
			}
			return d, nil
		}
	}
	return model.Document{}, ErrNotFound
}

// DeleteAll wipes the metadata and returns the removed records.
func (r *Documents) DeleteAll() ([]model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	documents, err := r.read()
	if err != nil {
		return nil, err
	}
	if err := storage.WriteCollection(r.path, []model.Document{}); err != nil {
		r.log.Errorw("writing documents file", "error", err)
		return nil, err
	}
	return documents, nil
}
