package rio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avdwal/rioview/internal/interfaces"
)

func TestGetOfferings_UnwrapsHALEnvelope(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/aangeboden-opleidingen" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = map[string]string{
			"organisatorischeEenheidcode": r.URL.Query().Get("organisatorischeEenheidcode"),
			"page":                        r.URL.Query().Get("page"),
			"pageSize":                    r.URL.Query().Get("pageSize"),
			"datumGeldigOp":               r.URL.Query().Get("datumGeldigOp"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"_embedded": {
				"AangebodenOpleidingen": [
					{"id": "AO-1", "type": "BA"},
					{"id": "AO-2", "type": "MA"}
				]
			},
			"page": {"size": 50}
		}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	page, err := client.GetOfferings(context.Background(), "123A456",
		interfaces.WithPage(0, 50), interfaces.WithValidOn("2025-11-21"))
	if err != nil {
		t.Fatalf("GetOfferings returned error: %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].StringField("id") != "AO-1" {
		t.Errorf("first item id = %q, want AO-1", page.Items[0].StringField("id"))
	}
	// Envelope has two top-level keys: _embedded and page
	if page.EnvelopeSize != 2 {
		t.Errorf("envelope size = %d, want 2", page.EnvelopeSize)
	}

	want := map[string]string{
		"organisatorischeEenheidcode": "123A456",
		"page":                        "0",
		"pageSize":                    "50",
		"datumGeldigOp":               "2025-11-21",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestGetOfferings_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "AO-1"}, {"id": "AO-2"}, {"id": "AO-3"}]`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	page, err := client.GetOfferings(context.Background(), "123A456", interfaces.WithPage(0, 50))
	if err != nil {
		t.Fatalf("GetOfferings returned error: %v", err)
	}

	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}
	// Bare array: envelope size is the item count
	if page.EnvelopeSize != 3 {
		t.Errorf("envelope size = %d, want 3", page.EnvelopeSize)
	}
}

func TestGetOfferings_MissingCollectionKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_embedded": {"SomethingElse": [{"id": "x"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	page, err := client.GetOfferings(context.Background(), "123A456", interfaces.WithPage(0, 50))
	if err != nil {
		t.Fatalf("GetOfferings returned error: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("expected empty items, got %d", len(page.Items))
	}
}

func TestSearchRecognitions_SendsPlaceParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("plaatsnaam"); got != "Utrecht" {
			t.Errorf("plaatsnaam = %q, want Utrecht", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_embedded": {"Erkenningen": [{"id": "ERK-1"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	results, err := client.SearchRecognitions(context.Background(), "Utrecht", interfaces.WithPage(0, 50))
	if err != nil {
		t.Fatalf("SearchRecognitions returned error: %v", err)
	}
	if len(results) != 1 || results[0].StringField("id") != "ERK-1" {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestGetOfferingProgram_ReturnsDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/aangeboden-opleidingen/AO-1/opleiding" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"crohoNaam": "Informatica", "EQFniveau": {"code": "6"}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	doc, err := client.GetOfferingProgram(context.Background(), "AO-1")
	if err != nil {
		t.Fatalf("GetOfferingProgram returned error: %v", err)
	}
	if doc.StringField("crohoNaam") != "Informatica" {
		t.Errorf("crohoNaam = %q, want Informatica", doc.StringField("crohoNaam"))
	}
}

func TestGetOfferingCohorts_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/aangeboden-opleidingen/AO-1/aangeboden-opleiding-cohorten" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"cohortId": "C1"}, {"cohortId": "C2"}]`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	cohorts, err := client.GetOfferingCohorts(context.Background(), "AO-1")
	if err != nil {
		t.Fatalf("GetOfferingCohorts returned error: %v", err)
	}
	if len(cohorts) != 2 {
		t.Errorf("expected 2 cohorts, got %d", len(cohorts))
	}
}

func TestGet_Non2xxReturnsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "registry unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetRecognition(context.Background(), "ERK-1")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
	if upstream.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", upstream.StatusCode)
	}
	if upstream.Message == "" {
		t.Error("expected upstream message to be carried")
	}
}

func TestQueryValues_OmitsUnsetParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("datumGeldigOp") {
			t.Error("datumGeldigOp should be absent when no date is set")
		}
		if r.URL.Query().Has("page") {
			t.Error("page should be absent when pagination is not set")
		}
		w.Write([]byte(`{"_embedded": {"organisatorischeEenheden": []}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	units, err := client.GetRecognitionOrgUnits(context.Background(), "ERK-1")
	if err != nil {
		t.Fatalf("GetRecognitionOrgUnits returned error: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("expected empty result, got %d", len(units))
	}
}
