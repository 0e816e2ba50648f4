package common

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYaml loads a yaml file into out
func LoadYaml(filename string, out interface{}) error {
	yamlData, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if err = yaml.Unmarshal(yamlData, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", filename, err)
	}
	return nil
}

// YamlObjectAsString outputs contents of yaml object with a label
func YamlObjectAsString(in interface{}, label string) string {
	d, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Sprintf("=== %s ===\n<%v>\n\n", label, err)
	}
	return fmt.Sprintf("=== %s ===\n%s\n\n", label, string(d))
}
