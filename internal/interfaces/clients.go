// Package interfaces defines service contracts for RIOView
package interfaces

import (
	"context"

	"github.com/avdwal/rioview/internal/models"
)

// RegistryClient provides access to the RIO registry LOD API.
type RegistryClient interface {
	// SearchRecognitions retrieves recognized organizations in a place
	SearchRecognitions(ctx context.Context, place string, opts ...QueryOption) ([]models.Document, error)

	// GetRecognition retrieves a single recognition by id
	GetRecognition(ctx context.Context, recognitionID string) (models.Document, error)

	// GetRecognitionLocations retrieves location usages for a recognition
	GetRecognitionLocations(ctx context.Context, recognitionID string, opts ...QueryOption) ([]models.Document, error)

	// GetRecognitionLicenses retrieves education licenses for a recognition
	GetRecognitionLicenses(ctx context.Context, recognitionID string, opts ...QueryOption) ([]models.Document, error)

	// GetRecognitionOrgUnits retrieves organizational units for a recognition
	GetRecognitionOrgUnits(ctx context.Context, recognitionID string, opts ...QueryOption) ([]models.Document, error)

	// GetOfferings retrieves one page of offerings for an organizational unit
	GetOfferings(ctx context.Context, unitCode string, opts ...QueryOption) (*models.OfferingsPage, error)

	// GetOfferingProgram retrieves the program linked to an offering
	GetOfferingProgram(ctx context.Context, offeringID string, opts ...QueryOption) (models.Document, error)

	// GetOfferingCohorts retrieves cohorts for an offering
	GetOfferingCohorts(ctx context.Context, offeringID string) ([]models.Document, error)
}

// QueryOption configures registry queries
type QueryOption func(*QueryParams)

// QueryParams holds optional registry query parameters
type QueryParams struct {
	ValidOn  string // point-in-time filter, YYYY-MM-DD
	Page     int
	PageSize int
}

// WithValidOn sets the point-in-time filter for the query
func WithValidOn(date string) QueryOption {
	return func(p *QueryParams) {
		p.ValidOn = date
	}
}

// WithPage sets pagination for the query
func WithPage(page, pageSize int) QueryOption {
	return func(p *QueryParams) {
		p.Page = page
		p.PageSize = pageSize
	}
}
