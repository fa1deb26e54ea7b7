package interfaces

import (
	"context"

	"github.com/avdwal/rioview/internal/models"
)

// CatalogService provides institution program listings built from the
// registry's offerings and program resources.
type CatalogService interface {
	// ListPrograms collects offerings for an organizational unit and enriches
	// each with program name and level. validOn may be empty.
	ListPrograms(ctx context.Context, unitCode, validOn string) ([]models.EnrichedOffering, error)

	// ListOfferedPrograms collects a single page of offerings and augments
	// each with full program detail and cohort presence (legacy shape).
	ListOfferedPrograms(ctx context.Context, unitCode, validOn string, pageSize int) ([]models.OfferedProgram, error)
}
