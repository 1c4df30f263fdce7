package sdf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
)

// ModelConfig is the model.config manifest that sits next to a model.sdf in
// a model database directory and tells the simulator which file to load.
type ModelConfig struct {
	XMLName     xml.Name `xml:"model"`
	Name        string   `xml:"name"`
	Version     string   `xml:"version"`
	SDF         SDFRef   `xml:"sdf"`
	Author      *Author  `xml:"author,omitempty"`
	Description string   `xml:"description,omitempty"`
}

// SDFRef names the description file and the format version it is written in.
type SDFRef struct {
	Version string `xml:"version,attr"`
	File    string `xml:",chardata"`
}

// Author identifies who maintains the model.
type Author struct {
	Name  string `xml:"name"`
	Email string `xml:"email,omitempty"`
}

// NewModelConfig returns a manifest pointing at model.sdf with the given
// format version.
func NewModelConfig(name, sdfVersion, description string) *ModelConfig {
	return &ModelConfig{
		Name:        name,
		Version:     "1.0",
		SDF:         SDFRef{Version: sdfVersion, File: "model.sdf"},
		Description: description,
	}
}

// ParseModelConfig decodes a model.config manifest.
func ParseModelConfig(data []byte) (*ModelConfig, error) {
	var mc ModelConfig
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&mc); err != nil {
		return nil, fmt.Errorf("parsing model.config: %w", err)
	}
	return &mc, nil
}

// LoadModelConfig reads and decodes a model.config file.
func LoadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	mc, err := ParseModelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mc, nil
}

// Validate checks the manifest has a name, a file reference, and a supported
// format version.
func (mc *ModelConfig) Validate() error {
	if mc.Name == "" {
		return fmt.Errorf("model.config has no name")
	}
	if mc.SDF.File == "" {
		return fmt.Errorf("model.config %q: no sdf file reference", mc.Name)
	}
	if !IsSupportedVersion(mc.SDF.Version) {
		return fmt.Errorf("model.config %q: unsupported sdf version %q", mc.Name, mc.SDF.Version)
	}
	return nil
}

// Encode renders the manifest as indented XML with the standard header.
func (mc *ModelConfig) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(mc); err != nil {
		return nil, fmt.Errorf("encoding model.config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding model.config: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
