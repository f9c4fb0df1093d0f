package tool

import (
	"fmt"
	"strings"
)

const (
	DefaultVersion  = "1.0.0"
	DefaultCategory = "general"
)

// Metadata describes a tool for registration and listing purposes.
// Identity is the (Name, Version) pair. Schema holds the tool's input schema
// as a JSON string so listings can advertise it without instantiating the
// tool; it must describe the same shape the tool's Schema method returns.
type Metadata struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Version       string         `json:"version"`
	Category      string         `json:"category"`
	Schema        string         `json:"schema,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

// NewMetadata builds metadata with defaults applied for version and category.
func NewMetadata(name, description string) (Metadata, error) {
	md := Metadata{
		Name:        name,
		Description: description,
		Version:     DefaultVersion,
		Category:    DefaultCategory,
	}
	if err := md.Validate(); err != nil {
		return Metadata{}, err
	}
	return md, nil
}

// Normalized returns a copy with empty version and category replaced by defaults.
func (m Metadata) Normalized() Metadata {
	if strings.TrimSpace(m.Version) == "" {
		m.Version = DefaultVersion
	}
	if strings.TrimSpace(m.Category) == "" {
		m.Category = DefaultCategory
	}
	return m
}

// Validate rejects metadata without a usable name or description.
func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("tool description cannot be empty")
	}
	return nil
}

// SameIdentity reports whether two metadata values describe the same tool release.
func (m Metadata) SameIdentity(other Metadata) bool {
	return m.Name == other.Name && m.Normalized().Version == other.Normalized().Version
}

func (m Metadata) String() string {
	md := m.Normalized()
	return fmt.Sprintf("%s@%s (%s)", md.Name, md.Version, md.Category)
}
