package project

import (
	"os"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// DefaultTemplatePath returns ~/.pipeload/templates.json.
func DefaultTemplatePath() (string, error) {
	return configFile("templates.json")
}

// SaveTemplates writes the template store to path.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeDocument(path, kindTemplates, store)
}

// LoadTemplates reads a template store from path. A missing file yields an
// empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	if err := readDocument(path, kindTemplates, &store); err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.JobTemplate{}
	}
	return store, nil
}

// LoadDefaultTemplates loads the user's templates.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	path, err := DefaultTemplatePath()
	if err != nil {
		return model.NewTemplateStore(), err
	}
	return LoadTemplates(path)
}

// SaveDefaultTemplates saves the user's templates.
func SaveDefaultTemplates(store model.TemplateStore) error {
	path, err := DefaultTemplatePath()
	if err != nil {
		return err
	}
	return SaveTemplates(path, store)
}
