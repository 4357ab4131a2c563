package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"model-generator/core/database"
	"model-generator/core/utils"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Model is the data handed to descriptor expressions and templates.
type Model = map[string]any

// LoadFile reads a YAML or JSON model file. The format follows the extension;
// unknown extensions are parsed as YAML.
func LoadFile(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes model data. ext selects JSON for ".json".
func Parse(data []byte, ext string) (Model, error) {
	m := Model{}
	var err error
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(data, &m)
	} else {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return m, nil
}

// FromDatabase builds a model from the schema of db. An empty tables list
// introspects every table.
func FromDatabase(db *gorm.DB, tables []string) (Model, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if len(tables) == 0 {
		var err error
		if tables, err = database.ListTables(db); err != nil {
			return nil, err
		}
	}

	out := make([]any, 0, len(tables))
	for _, table := range tables {
		columns, err := database.GetTableColumns(db, table)
		if err != nil {
			return nil, err
		}
		cols := make([]any, 0, len(columns))
		for _, c := range columns {
			col := map[string]any{
				"name":       c.Field,
				"type":       c.Type,
				"nullable":   c.Nullable(),
				"key":        c.Key,
				"primaryKey": c.Key == "PRI",
			}
			if c.Default != nil {
				col["default"] = *c.Default
			}
			cols = append(cols, col)
		}
		out = append(out, map[string]any{"name": table, "columns": cols})
	}
	return Model{"tables": out}, nil
}

// Actors returns the sorted, de-duplicated actor names of m. Entries of the
// "actors" list may be plain strings or objects with a "name" field.
func Actors(m Model) []string {
	list, ok := m["actors"].([]any)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	var names []string
	for _, item := range list {
		var name string
		switch v := item.(type) {
		case map[string]any:
			name = utils.ToString(v["name"])
		default:
			name = utils.ToString(v)
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Actor returns the actor entry named name, as an object.
func Actor(m Model, name string) map[string]any {
	list, _ := m["actors"].([]any)
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok && utils.ToString(obj["name"]) == name {
			return obj
		}
	}
	return map[string]any{"name": name}
}
