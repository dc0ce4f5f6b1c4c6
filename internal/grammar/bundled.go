package grammar

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	irregularVerbsEnv = "STORYGAP_IRREGULAR_VERBS_YAML"
	overridesEnv      = "STORYGAP_OVERRIDES_YAML"
)

//go:embed data/irregular_verbs.yaml data/overrides.yaml
var bundledFS embed.FS

type irregularFile struct {
	Verbs []IrregularEntry `yaml:"verbs"`
}

var (
	bundledIrregularOnce sync.Once
	bundledIrregular     *IrregularTable
	bundledIrregularErr  error

	bundledOverridesOnce sync.Once
	bundledOverrides     *Overrides
	bundledOverridesErr  error
)

// BundledIrregularEntries parses the static irregular-verb list. The file can
// be replaced at runtime through STORYGAP_IRREGULAR_VERBS_YAML.
func BundledIrregularEntries() ([]IrregularEntry, error) {
	data, err := readBundled(irregularVerbsEnv, "data/irregular_verbs.yaml")
	if err != nil {
		return nil, err
	}
	var f irregularFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse irregular verbs: %w", err)
	}
	if len(f.Verbs) == 0 {
		return nil, fmt.Errorf("parse irregular verbs: no entries")
	}
	return f.Verbs, nil
}

// BundledIrregularTable returns the table built from the static list, parsed once.
func BundledIrregularTable() (*IrregularTable, error) {
	bundledIrregularOnce.Do(func() {
		entries, err := BundledIrregularEntries()
		if err != nil {
			bundledIrregularErr = err
			return
		}
		bundledIrregular, bundledIrregularErr = NewIrregularTable(entries)
	})
	return bundledIrregular, bundledIrregularErr
}

// BundledOverrides returns the static spelling overrides, parsed once.
func BundledOverrides() (*Overrides, error) {
	bundledOverridesOnce.Do(func() {
		data, err := readBundled(overridesEnv, "data/overrides.yaml")
		if err != nil {
			bundledOverridesErr = err
			return
		}
		var d OverrideData
		if err := yaml.Unmarshal(data, &d); err != nil {
			bundledOverridesErr = fmt.Errorf("parse overrides: %w", err)
			return
		}
		bundledOverrides, bundledOverridesErr = NewOverrides(d)
	})
	return bundledOverrides, bundledOverridesErr
}

func readBundled(env, name string) ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(env)); path != "" {
		return os.ReadFile(path)
	}
	return bundledFS.ReadFile(name)
}
