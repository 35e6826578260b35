package repo

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"magazyn/internal/model"
	"magazyn/internal/storage"
)

// Categories przechowuje kategorie dokumentów w data/categories.json.
type Categories struct {
	mu   sync.Mutex
	path string
	log  *zap.SugaredLogger
}

func NewCategories(dataDir string, log *zap.SugaredLogger) *Categories {
	return &Categories{path: filepath.Join(dataDir, "categories.json"), log: log}
}

func (r *Categories) read() ([]model.Category, error) {
	categories := []model.Category{}
	if err := storage.ReadCollection(r.path, &categories); err != nil {
		r.log.Errorw("reading categories file", "error", err)
		return nil, err
	}
	return categories, nil
}

// List returns all categories.
func (r *Categories) List() ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func nameTaken(categories []model.Category, name string, excludeID int) bool {
	for _, c := range categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// Create adds a category. Names are unique case-insensitively.
func (r *Categories) Create(name, description string) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.read()
	if err != nil {
		return model.Category{}, err
	}
	if nameTaken(categories, name, -1) {
		return model.Category{}, ErrNameExists
	}
	ids := make([]int, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	cat := model.Category{
		ID:          nextID(ids),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedDate: time.Now().UTC(),
	}
	categories = append(categories, cat)
	if err := storage.WriteCollection(r.path, categories); err != nil {
		r.log.Errorw("writing categories file", "error", err)
		return model.Category{}, err
	}
	return cat, nil
}

// Update renames a category or changes its description.
func (r *Categories) Update(id int, name, description string) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.read()
	if err != nil {
		return model.Category{}, err
	}
	idx := -1
	for i, c := range categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Category{}, ErrNotFound
	}
	if nameTaken(categories, name, id) {
		return model.Category{}, ErrNameExists
	}
	categories[idx].Name = strings.TrimSpace(name)
	categories[idx].Description = strings.TrimSpace(description)
	if err := storage.WriteCollection(r.path, categories); err != nil {
		r.log.Errorw("writing categories file", "error", err)
		return model.Category{}, err
	}
	return categories[idx], nil
}

// Delete removes a category by id.
func (r *Categories) Delete(id int) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.read()
	if err != nil {
		return model.Category{}, err
	}
	for i, c := range categories {
		if c.ID == id {
			categories = append(categories[:i], categories[i+1:]...)
			if err := storage.WriteCollection(r.path, categories); err != nil {
				r.log.Errorw("writing categories file", "error", err)
				return model.Category{}, err
			}
			return c, nil
		}
	}
	return model.Category{}, ErrNotFound
}
