package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemTemplate represents a reusable packing job: an item list, the
// container it targets and the settings, but not packing results.
type ItemTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Container   Dimensions   `json:"container"`
	Items       []Item       `json:"items"`
	Settings    PackSettings `json:"settings"`
}

// NewItemTemplate creates a new template from the given job data.
func NewItemTemplate(name, description string, container Dimensions, items []Item, settings PackSettings) ItemTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ItemTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Container:   container,
		Items:       copyItems(items),
		Settings:    settings,
	}
}

// FreshItems returns copies of the template items with new IDs so a job
// started from the template is independent of it.
func (t ItemTemplate) FreshItems() []Item {
	items := make([]Item, len(t.Items))
	for i, it := range t.Items {
		d := it.Dimensions
		items[i] = NewItem(it.Label, d.Width, d.Height, d.Depth, it.Quantity)
	}
	return items
}

// TemplateStore holds a collection of item templates.
type TemplateStore struct {
	Templates []ItemTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ItemTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ItemTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ItemTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ItemTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return cp
}
