package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avdwal/rioview/internal/interfaces"
	"github.com/avdwal/rioview/internal/models"
)

const defaultPageSize = 50

// parseDateParam reads an optional YYYY-MM-DD query parameter. When the value
// is malformed it writes a 400 response and returns ok=false. Validation
// happens before any registry call is made.
func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", true
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("%s must be in YYYY-MM-DD format", name))
		return "", false
	}
	return value, true
}

// parsePageParams reads optional page and pageSize query parameters,
// defaulting to page 0 and pageSize 50. pageSize is bounded to [1,100].
func parsePageParams(w http.ResponseWriter, r *http.Request) (page, pageSize int, ok bool) {
	page, pageSize = 0, defaultPageSize

	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 {
			WriteError(w, http.StatusBadRequest, "page must be a non-negative integer")
			return 0, 0, false
		}
		page = p
	}

	if v := r.URL.Query().Get("pageSize"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 100 {
			WriteError(w, http.StatusBadRequest, "pageSize must be between 1 and 100")
			return 0, 0, false
		}
		pageSize = p
	}

	return page, pageSize, true
}

// writeUpstreamError surfaces a registry failure as a 502 with the upstream
// message embedded.
func writeUpstreamError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadGateway, fmt.Sprintf("RIO API error: %v", err))
}

// handleRecognitionSearch handles GET /api/recognitions?place=... and lists
// recognized organizations in a place.
func (s *Server) handleRecognitionSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	place := r.URL.Query().Get("place")
	if place == "" {
		WriteError(w, http.StatusBadRequest, "place is required")
		return
	}

	asOfDate, ok := parseDateParam(w, r, "asOfDate")
	if !ok {
		return
	}
	page, pageSize, ok := parsePageParams(w, r)
	if !ok {
		return
	}

	opts := []interfaces.QueryOption{interfaces.WithPage(page, pageSize)}
	if asOfDate != "" {
		opts = append(opts, interfaces.WithValidOn(asOfDate))
	}

	results, err := s.app.RegistryClient.SearchRecognitions(r.Context(), place, opts...)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if results == nil {
		results = []models.Document{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// handleRecognitionDetail handles GET /api/recognitions/{id}, returning a
// recognition with its locations and licenses from three registry calls.
func (s *Server) handleRecognitionDetail(w http.ResponseWriter, r *http.Request, recognitionID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	asOfDate, ok := parseDateParam(w, r, "asOfDate")
	if !ok {
		return
	}

	var opts []interfaces.QueryOption
	if asOfDate != "" {
		opts = append(opts, interfaces.WithValidOn(asOfDate))
	}

	ctx := r.Context()

	recognition, err := s.app.RegistryClient.GetRecognition(ctx, recognitionID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	locations, err := s.app.RegistryClient.GetRecognitionLocations(ctx, recognitionID, opts...)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	licenses, err := s.app.RegistryClient.GetRecognitionLicenses(ctx, recognitionID, opts...)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.RecognitionDetail{
		Recognition: recognition,
		Locations:   locations,
		Licenses:    licenses,
	})
}

// handleRecognitionOrgUnits handles GET /api/recognitions/{id}/org-units.
func (s *Server) handleRecognitionOrgUnits(w http.ResponseWriter, r *http.Request, recognitionID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	asOfDate, ok := parseDateParam(w, r, "asOfDate")
	if !ok {
		return
	}

	var opts []interfaces.QueryOption
	if asOfDate != "" {
		opts = append(opts, interfaces.WithValidOn(asOfDate))
	}

	units, err := s.app.RegistryClient.GetRecognitionOrgUnits(r.Context(), recognitionID, opts...)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if units == nil {
		units = []models.Document{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"results": units})
}

// handleInstitutionPrograms handles GET /api/institutions/{unitCode}/programs,
// returning offerings for an institution enriched with program name and level.
func (s *Server) handleInstitutionPrograms(w http.ResponseWriter, r *http.Request, unitCode string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	asOfDate, ok := parseDateParam(w, r, "asOfDate")
	if !ok {
		return
	}

	items, err := s.app.CatalogService.ListPrograms(r.Context(), unitCode, asOfDate)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if items == nil {
		items = []models.EnrichedOffering{}
	}

	WriteJSON(w, http.StatusOK, models.ProgramList{
		InstitutionCode: unitCode,
		AsOfDate:        asOfDate,
		Count:           len(items),
		Items:           items,
	})
}

// handleOfferedPrograms handles GET /api/institutions/{unitCode}/offered-programs,
// the legacy single-page listing with full program detail and cohort presence
// per offering. Use /programs for the current shape.
func (s *Server) handleOfferedPrograms(w http.ResponseWriter, r *http.Request, unitCode string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	date, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}
	_, pageSize, ok := parsePageParams(w, r)
	if !ok {
		return
	}

	results, err := s.app.CatalogService.ListOfferedPrograms(r.Context(), unitCode, date, pageSize)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if results == nil {
		results = []models.OfferedProgram{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
