package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/*.json
var embedded embed.FS

// DataLoader handles loading content tables from files
type DataLoader struct {
	files fs.FS
	dir   string
}

// NewDataLoader creates a loader reading table files from basePath
func NewDataLoader(basePath string) *DataLoader {
	return &DataLoader{
		files: os.DirFS(basePath),
		dir:   ".",
	}
}

// Default returns the built-in tables shipped with the binary
func Default() (*Tables, error) {
	loader := &DataLoader{files: embedded, dir: "data"}
	return loader.Load()
}

// MustDefault is Default for package-level wiring and tests
func MustDefault() *Tables {
	tables, err := Default()
	if err != nil {
		panic(err)
	}
	return tables
}

// Load reads, schema-checks and decodes every table, then validates
// cross references.
func (dl *DataLoader) Load() (*Tables, error) {
	tables := &Tables{}

	targets := []struct {
		name string
		dest any
	}{
		{"universities", &tables.Universities},
		{"programs", &tables.Programs},
		{"courses", &tables.Courses},
		{"companies", &tables.Companies},
		{"job_titles", &tables.JobTitles},
		{"skills", &tables.Skills},
		{"certifications", &tables.Certifications},
		{"education_events", &tables.EducationEvents},
		{"life_events", &tables.LifeEvents},
	}

	for _, target := range targets {
		if err := dl.loadTable(target.name, target.dest); err != nil {
			return nil, err
		}
	}

	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content tables: %w", err)
	}

	return tables, nil
}

func (dl *DataLoader) loadTable(name string, dest any) error {
	data, err := fs.ReadFile(dl.files, path.Join(dl.dir, name+".json"))
	if err != nil {
		return fmt.Errorf("failed to read %s file: %w", name, err)
	}

	if err := ValidateTable(name, data); err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", name, err)
	}

	return nil
}

// ValidateTable checks a raw table document against its JSON schema
func ValidateTable(name string, data []byte) error {
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("no schema for table %q", name)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", name, err)
	}

	if !result.Valid() {
		errs := result.Errors()
		return fmt.Errorf("%s does not match schema: %s (and %d more)", name, errs[0].String(), len(errs)-1)
	}

	return nil
}
