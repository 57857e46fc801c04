package model

import (
	"time"

	"github.com/google/uuid"
)

// JobTemplate represents a reusable order configuration that captures
// pipes, the container, and settings but not calculation results.
type JobTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Pipes       []Pipe    `json:"pipes"`
	Container   Container `json:"container"`
	Settings    Settings  `json:"settings"`
}

// NewJobTemplate creates a new template from the given project data.
// It copies pipes, container, and settings but intentionally excludes results.
func NewJobTemplate(name, description string, pipes []Pipe, container Container, settings Settings) JobTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return JobTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Pipes:       copyPipes(pipes),
		Container:   container,
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template.
// Pipes and the container get fresh IDs so they are independent of the template.
func (t JobTemplate) ToProject(projectName string) Project {
	pipes := make([]Pipe, len(t.Pipes))
	for i, p := range t.Pipes {
		pipes[i] = NewPipe(p.Label, p.ExternalDiameter, p.InternalDiameter, p.Length, p.QuantityMeters, p.WeightPerMeter)
	}

	c := t.Container
	return Project{
		Name:      projectName,
		Pipes:     pipes,
		Container: NewContainer(c.Label, c.Width, c.Height, c.Length, c.WeightCapacity),
		Settings:  t.Settings,
	}
}

// TemplateStore holds a collection of job templates.
type TemplateStore struct {
	Templates []JobTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []JobTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t JobTemplate) {
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
func (ts *TemplateStore) FindByID(id string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyPipes(pipes []Pipe) []Pipe {
	if pipes == nil {
		return []Pipe{}
	}
	cp := make([]Pipe, len(pipes))
	copy(cp, pipes)
	return cp
}
