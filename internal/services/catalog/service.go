// Package catalog builds institution program listings from the RIO registry.
// Offerings are collected page by page, then each is enriched with data from
// its linked program resource.
package catalog

import (
	"context"

	"github.com/avdwal/rioview/internal/common"
	"github.com/avdwal/rioview/internal/interfaces"
	"github.com/avdwal/rioview/internal/models"
)

const (
	// DefaultMaxPages bounds how many registry pages one listing request
	// may fetch.
	DefaultMaxPages = 2

	// DefaultPageSize is the registry page size used when the caller does
	// not supply one.
	DefaultPageSize = 50
)

// Service implements CatalogService on top of a RegistryClient.
type Service struct {
	registry interfaces.RegistryClient
	logger   *common.Logger
}

// NewService creates a new catalog service.
func NewService(registry interfaces.RegistryClient, logger *common.Logger) *Service {
	return &Service{
		registry: registry,
		logger:   logger,
	}
}

// ListPrograms collects offerings for an organizational unit and enriches
// each with program name and level. validOn may be empty.
func (s *Service) ListPrograms(ctx context.Context, unitCode, validOn string) ([]models.EnrichedOffering, error) {
	offerings, err := s.collect(ctx, unitCode, validOn, DefaultMaxPages, DefaultPageSize)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, offerings, validOn), nil
}

// ListOfferedPrograms collects a single page of offerings and augments each
// with full program detail and cohort presence. Per-item failures degrade
// that item only; the listing itself never fails once collection succeeded.
func (s *Service) ListOfferedPrograms(ctx context.Context, unitCode, validOn string, pageSize int) ([]models.OfferedProgram, error) {
	offerings, err := s.collect(ctx, unitCode, validOn, 1, pageSize)
	if err != nil {
		return nil, err
	}

	results := make([]models.OfferedProgram, 0, len(offerings))
	for _, offering := range offerings {
		results = append(results, s.offeredProgram(ctx, offering))
	}
	return results, nil
}

// collect gathers offerings page by page until an empty page, a short page,
// or the page ceiling. Hitting the ceiling returns the partial result
// silently. Any page failure aborts the whole collection.
func (s *Service) collect(ctx context.Context, unitCode, validOn string, maxPages, pageSize int) ([]models.Document, error) {
	var collected []models.Document

	for page := 0; page < maxPages; page++ {
		opts := []interfaces.QueryOption{interfaces.WithPage(page, pageSize)}
		if validOn != "" {
			opts = append(opts, interfaces.WithValidOn(validOn))
		}

		p, err := s.registry.GetOfferings(ctx, unitCode, opts...)
		if err != nil {
			return nil, err
		}

		if len(p.Items) == 0 {
			break
		}
		collected = append(collected, p.Items...)

		// Last-page check compares the raw envelope's top-level size to the
		// page size, not the item count. A HAL envelope has only a few
		// top-level keys, so this tends to stop after the first page; kept
		// as-is for compatibility with existing consumers.
		if p.EnvelopeSize < pageSize {
			break
		}
	}

	s.logger.Debug().Str("unit_code", unitCode).Int("collected", len(collected)).Msg("Offerings collected")

	return collected, nil
}

// enrich produces one enriched record per offering, in input order. A failed
// or absent program lookup leaves the program fields null; it never removes
// the record.
func (s *Service) enrich(ctx context.Context, offerings []models.Document, validOn string) []models.EnrichedOffering {
	enriched := make([]models.EnrichedOffering, 0, len(offerings))

	for _, offering := range offerings {
		id := offering.StringField("id")

		var program models.Document
		if id != "" {
			program = s.fetchProgramDetail(ctx, id, validOn)
		}

		rec := models.EnrichedOffering{
			OfferingID:             id,
			OrganizationalUnitCode: offering.StringField("organisatorischeEenheidcode"),
			Type:                   offering.StringField("type"),
			StartDate:              offering.StringField("begindatum"),
			EndDate:                offering.StringField("einddatum"),
			RawOffering:            offering,
			RawProgram:             program,
		}
		if program != nil {
			rec.ProgramName = extractProgramName(program)
			rec.ProgramLevel = extractProgramLevel(program)
		}

		enriched = append(enriched, rec)
	}

	return enriched
}

// fetchProgramDetail wraps the program lookup so any failure degrades to a
// nil document with a logged diagnostic instead of aborting the batch.
func (s *Service) fetchProgramDetail(ctx context.Context, offeringID, validOn string) models.Document {
	var opts []interfaces.QueryOption
	if validOn != "" {
		opts = append(opts, interfaces.WithValidOn(validOn))
	}

	program, err := s.registry.GetOfferingProgram(ctx, offeringID, opts...)
	if err != nil {
		s.logger.Warn().Err(err).Str("offering_id", offeringID).Msg("Program detail fetch failed")
		return nil
	}
	return program
}

// offeredProgram builds one legacy listing item, fetching program detail and
// cohorts for the offering. Any failure yields a degraded item carrying the
// failure message.
func (s *Service) offeredProgram(ctx context.Context, offering models.Document) models.OfferedProgram {
	id := offering.StringField("id")
	if id == "" {
		return degradedOfferedProgram("", "offering has no id")
	}

	program, err := s.registry.GetOfferingProgram(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("offering_id", id).Msg("Offered program detail fetch failed")
		return degradedOfferedProgram(id, err.Error())
	}

	cohorts, err := s.registry.GetOfferingCohorts(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("offering_id", id).Msg("Offered program cohorts fetch failed")
		return degradedOfferedProgram(id, err.Error())
	}

	hasCohorts := len(cohorts) > 0
	if !hasCohorts {
		cohorts = []models.Document{}
	}

	return models.OfferedProgram{
		ID:         id,
		Program:    program,
		HasCohorts: hasCohorts,
		Cohorts:    cohorts,
	}
}

func degradedOfferedProgram(id, message string) models.OfferedProgram {
	return models.OfferedProgram{
		ID:         id,
		Program:    models.Document{"name": "Failed to fetch details", "type": "UNKNOWN"},
		HasCohorts: false,
		Cohorts:    []models.Document{},
		Error:      message,
	}
}

// Ensure Service implements CatalogService
var _ interfaces.CatalogService = (*Service)(nil)
