package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/piwi3910/cabplan/internal/model"
)

// DefaultStylesDir returns the default directory for storing custom styles.
func DefaultStylesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "cabplan")
	return dir, nil
}

// DefaultStylesPath returns the default file path for custom styles.
func DefaultStylesPath() (string, error) {
	dir, err := DefaultStylesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "styles.json"), nil
}

// SaveCustomStyles saves custom construction styles to a JSON file.
func SaveCustomStyles(path string, styles []model.NamedStyle) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(styles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomStyles loads custom construction styles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomStyles(path string) ([]model.NamedStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.NamedStyle{}, nil
		}
		return nil, err
	}

	var styles []model.NamedStyle
	if err := json.Unmarshal(data, &styles); err != nil {
		return nil, err
	}

	// Ensure loaded styles are not marked as built-in
	for i := range styles {
		styles[i].IsBuiltIn = false
	}
	return styles, nil
}

// SaveCustomStylesToDefault saves custom styles to the default path.
func SaveCustomStylesToDefault(styles []model.NamedStyle) error {
	path, err := DefaultStylesPath()
	if err != nil {
		return err
	}
	return SaveCustomStyles(path, styles)
}

// LoadCustomStylesFromDefault loads custom styles from the default path.
func LoadCustomStylesFromDefault() ([]model.NamedStyle, error) {
	path, err := DefaultStylesPath()
	if err != nil {
		return nil, err
	}
	return LoadCustomStyles(path)
}

// ExportStyle exports a single style to a JSON file (for sharing).
func ExportStyle(path string, style model.NamedStyle) error {
	style.IsBuiltIn = false
	data, err := json.MarshalIndent(style, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportStyle imports a single style from a JSON file.
func ImportStyle(path string) (model.NamedStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.NamedStyle{}, err
	}

	var style model.NamedStyle
	if err := json.Unmarshal(data, &style); err != nil {
		return model.NamedStyle{}, err
	}

	style.IsBuiltIn = false
	if style.Name == "" {
		return model.NamedStyle{}, errors.New("imported style has no name")
	}
	return style, nil
}

// StyleStore combines the built-in construction styles with the user's
// saved custom styles.
type StyleStore struct {
	Custom []model.NamedStyle
}

// OpenDefaultStore loads the store backed by the default styles path.
func OpenDefaultStore() (*StyleStore, error) {
	custom, err := LoadCustomStylesFromDefault()
	if err != nil {
		return nil, err
	}
	return &StyleStore{Custom: custom}, nil
}

// All returns every available style, built-ins first.
func (st *StyleStore) All() []model.NamedStyle {
	all := make([]model.NamedStyle, 0, len(model.BuiltInStyles)+len(st.Custom))
	all = append(all, model.BuiltInStyles...)
	all = append(all, st.Custom...)
	return all
}

// Names returns the names of every available style, built-ins first.
func (st *StyleStore) Names() []string {
	all := st.All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// FindByName returns the first style with the given name, or nil. Built-in
// styles shadow custom ones of the same name.
func (st *StyleStore) FindByName(name string) *model.NamedStyle {
	for _, s := range model.BuiltInStyles {
		if s.Name == name {
			found := s
			return &found
		}
	}
	for i := range st.Custom {
		if st.Custom[i].Name == name {
			return &st.Custom[i]
		}
	}
	return nil
}

// FindByID returns a pointer to the custom style with the given ID, or nil.
// Built-in styles are addressed by name, not ID.
func (st *StyleStore) FindByID(id string) *model.NamedStyle {
	for i := range st.Custom {
		if st.Custom[i].ID == id {
			return &st.Custom[i]
		}
	}
	return nil
}

// Add appends a custom style, assigning a short ID when missing, and
// returns the stored copy.
func (st *StyleStore) Add(s model.NamedStyle) model.NamedStyle {
	if s.ID == "" {
		s.ID = uuid.New().String()[:8]
	}
	s.IsBuiltIn = false
	st.Custom = append(st.Custom, s)
	return s
}

// Remove deletes the custom style with the given ID. Built-ins cannot be
// removed.
func (st *StyleStore) Remove(id string) bool {
	for i := range st.Custom {
		if st.Custom[i].ID == id {
			st.Custom = append(st.Custom[:i], st.Custom[i+1:]...)
			return true
		}
	}
	return false
}

// Save writes the custom styles to the given path.
func (st *StyleStore) Save(path string) error {
	return SaveCustomStyles(path, st.Custom)
}
