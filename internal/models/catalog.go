// Package models defines the transient data types exchanged with the RIO registry
package models

// Document is a schemaless registry object. The registry's resource shapes
// vary by type and version, so raw payloads are carried as-is and relevant
// fields are extracted best-effort.
type Document map[string]any

// StringField returns the named top-level field as a string, or "" when the
// field is absent or not a string.
func (d Document) StringField(key string) string {
	if d == nil {
		return ""
	}
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// OfferingsPage holds one page of offerings together with the raw envelope's
// top-level field count, which the collector uses for its last-page check.
type OfferingsPage struct {
	Items        []Document
	EnvelopeSize int
}

// EnrichedOffering is an offering augmented with program name and level
// extracted from the linked program resource. ProgramName, ProgramLevel and
// RawProgram stay null when enrichment found nothing or failed; the record
// itself is never dropped.
type EnrichedOffering struct {
	OfferingID             string   `json:"offeringId"`
	OrganizationalUnitCode string   `json:"organizationalUnitCode"`
	Type                   string   `json:"type"`
	StartDate              string   `json:"startDate"`
	EndDate                string   `json:"endDate"`
	ProgramName            *string  `json:"programName"`
	ProgramLevel           *string  `json:"programLevel"`
	RawOffering            Document `json:"rawOffering"`
	RawProgram             Document `json:"rawProgram"`
}

// ProgramList is the response body for the modern programs endpoint.
type ProgramList struct {
	InstitutionCode string             `json:"institutionCode"`
	AsOfDate        string             `json:"asOfDate"`
	Count           int                `json:"count"`
	Items           []EnrichedOffering `json:"items"`
}

// OfferedProgram is one item of the legacy offered-programs endpoint. A
// failed item is kept with a placeholder program and the failure message in
// Error rather than being omitted.
type OfferedProgram struct {
	ID         string     `json:"id"`
	Program    Document   `json:"program"`
	HasCohorts bool       `json:"hasCohorts"`
	Cohorts    []Document `json:"cohorts"`
	Error      string     `json:"error,omitempty"`
}

// RecognitionDetail aggregates a recognition with its locations and licenses.
type RecognitionDetail struct {
	Recognition Document   `json:"recognition"`
	Locations   []Document `json:"locations"`
	Licenses    []Document `json:"licenses"`
}
