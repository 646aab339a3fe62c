// Package store loads keyword vocabularies from YAML files.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/docfields/internal/classifier"
	"fjacquet/docfields/internal/fields"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultVocabularyFile is looked up when no file is configured.
const DefaultVocabularyFile = "vocabulary.yaml"

// VocabularyFile is the YAML shape of a vocabulary override. Omitted lists
// keep their built-in values.
type VocabularyFile struct {
	SupplierBoilerplate []string        `yaml:"supplier_boilerplate"`
	ShippingBoilerplate []string        `yaml:"shipping_boilerplate"`
	CompanyKeywords     []string        `yaml:"company_keywords"`
	AddressKeywords     []string        `yaml:"address_keywords"`
	AggregateKeywords   []string        `yaml:"aggregate_keywords"`
	QuantityUnits       []string        `yaml:"quantity_units"`
	Classifier          []ClassifierRow `yaml:"classifier"`
}

// ClassifierRow is one ordered classifier rule.
type ClassifierRow struct {
	Type     string   `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary is the resolved result of loading a file.
type Vocabulary struct {
	Fields fields.Vocabulary
	// Rules is nil when the file defines no classifier section.
	Rules []classifier.Rule
	// Source is the file that was read, or "" when defaults were used.
	Source string
}

// VocabularyStore finds and loads a vocabulary file.
type VocabularyStore struct {
	File   string
	logger logging.Logger
}

// NewVocabularyStore creates a store for file. An empty file searches for
// DefaultVocabularyFile and falls back to the built-in lists.
func NewVocabularyStore(file string, logger logging.Logger) *VocabularyStore {
	return &VocabularyStore{File: file, logger: logging.OrDefault(logger)}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *VocabularyStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join(".docfields", filename),
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".docfields", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the vocabulary. A configured file that cannot be found is an
// error; a missing default file is not.
func (s *VocabularyStore) Load() (Vocabulary, error) {
	defaults := Vocabulary{Fields: fields.DefaultVocabulary()}

	filename := s.File
	if filename == "" {
		filename = DefaultVocabularyFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		if s.File == "" {
			s.logger.Debug("No vocabulary file found, using built-in keywords")
			return defaults, nil
		}
		return Vocabulary{}, fmt.Errorf("vocabulary file not found: %s", s.File)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return Vocabulary{}, fmt.Errorf("error reading vocabulary file: %w", err)
	}

	var file VocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Vocabulary{}, fmt.Errorf("error parsing vocabulary file %s: %w", path, err)
	}

	rules, err := file.rules()
	if err != nil {
		return Vocabulary{}, fmt.Errorf("invalid vocabulary file %s: %w", path, err)
	}

	s.logger.Info("Loaded vocabulary",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "classifier_rules", Value: len(rules)})
	return Vocabulary{Fields: file.merge(defaults.Fields), Rules: rules, Source: path}, nil
}

func (f VocabularyFile) merge(v fields.Vocabulary) fields.Vocabulary {
	pick := func(override, def []string) []string {
		if len(override) > 0 {
			return override
		}
		return def
	}
	return fields.Vocabulary{
		SupplierBoilerplate: pick(f.SupplierBoilerplate, v.SupplierBoilerplate),
		ShippingBoilerplate: pick(f.ShippingBoilerplate, v.ShippingBoilerplate),
		CompanyKeywords:     pick(f.CompanyKeywords, v.CompanyKeywords),
		AddressKeywords:     pick(f.AddressKeywords, v.AddressKeywords),
		AggregateKeywords:   pick(f.AggregateKeywords, v.AggregateKeywords),
		QuantityUnits:       pick(f.QuantityUnits, v.QuantityUnits),
	}
}

func (f VocabularyFile) rules() ([]classifier.Rule, error) {
	if len(f.Classifier) == 0 {
		return nil, nil
	}
	rules := make([]classifier.Rule, 0, len(f.Classifier))
	for i, row := range f.Classifier {
		t := models.ParseRequestedType(row.Type)
		if t == models.Unknown {
			return nil, fmt.Errorf("classifier rule %d: unknown document type %q", i+1, row.Type)
		}
		if len(row.Keywords) == 0 {
			return nil, fmt.Errorf("classifier rule %d: no keywords", i+1)
		}
		rules = append(rules, classifier.Rule{Type: t, Keywords: row.Keywords})
	}
	return rules, nil
}
