package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
	"gopkg.in/yaml.v3"
)

// Format is a bundle serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q: must be json or yaml", s)
}

// Export reads every persisted document into a bundle.
func Export(ctx context.Context, st ports.Storage) (*domain.Bundle, error) {
	var b domain.Bundle
	var err error

	if b.History, err = st.History().Load(ctx); err != nil {
		return nil, err
	}
	if b.Queue, err = st.Queue().Load(ctx); err != nil {
		return nil, err
	}
	if b.Timers, err = st.Timers().Load(ctx); err != nil {
		return nil, err
	}

	settings := st.Settings()
	if b.Modes, err = settings.Modes(ctx); err != nil {
		return nil, err
	}
	if b.Goals, err = settings.Goals(ctx); err != nil {
		return nil, err
	}
	if b.Flow, err = settings.Flow(ctx); err != nil {
		return nil, err
	}
	if b.Theme, err = settings.Theme(ctx); err != nil {
		return nil, err
	}
	if b.Sound, err = settings.Sound(ctx); err != nil {
		return nil, err
	}
	if b.Deadline, err = settings.Deadline(ctx); err != nil {
		return nil, err
	}
	if b.Breath, err = settings.Breath(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

// Import replaces every persisted document with the bundle's contents.
func Import(ctx context.Context, st ports.Storage, b *domain.Bundle) error {
	settings := st.Settings()
	steps := []struct {
		name string
		fn   func() error
	}{
		{"history", func() error { return st.History().Save(ctx, domain.SanitizeHistory(b.History)) }},
		{"queue", func() error { return st.Queue().Save(ctx, b.Queue) }},
		{"timers", func() error { return st.Timers().Save(ctx, b.Timers) }},
		{"modes", func() error { return settings.SaveModes(ctx, b.Modes) }},
		{"goals", func() error { return settings.SaveGoals(ctx, b.Goals) }},
		{"flow", func() error { return settings.SaveFlow(ctx, b.Flow) }},
		{"theme", func() error { return settings.SaveTheme(ctx, b.Theme) }},
		{"sound", func() error { return settings.SaveSound(ctx, b.Sound) }},
		{"deadline", func() error { return settings.SaveDeadline(ctx, b.Deadline) }},
		{"breath", func() error { return settings.SaveBreath(ctx, b.Breath) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("failed to import %s: %w", s.name, err)
		}
	}
	return nil
}

// EncodeBundle serializes b.
func EncodeBundle(b *domain.Bundle, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(b)
	}
	return json.MarshalIndent(b, "", "  ")
}

// DecodeBundle parses data produced by EncodeBundle.
func DecodeBundle(data []byte, format Format) (*domain.Bundle, error) {
	var b domain.Bundle
	var err error
	if format == FormatYAML {
		err = yaml.Unmarshal(data, &b)
	} else {
		err = json.Unmarshal(data, &b)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return &b, nil
}
