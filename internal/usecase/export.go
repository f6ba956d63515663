package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/runoshun/braindump/internal/domain"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportInput contains the parameters for exporting the state.
type ExportInput struct {
	Format string // "json" (default) or "yaml"
}

// Export writes the whole state document to w.
type Export struct {
	store domain.StateStore
	w     io.Writer
}

// NewExport creates a new Export use case.
func NewExport(store domain.StateStore, w io.Writer) *Export {
	return &Export{
		store: store,
		w:     w,
	}
}

// Execute writes a snapshot of the state in the requested format.
func (uc *Export) Execute(_ context.Context, in ExportInput) error {
	state := uc.store.State()
	switch in.Format {
	case "", FormatJSON:
		enc := json.NewEncoder(uc.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(&state); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(uc.w)
		enc.SetIndent(2)
		if err := enc.Encode(&state); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, in.Format)
	}
	return nil
}
