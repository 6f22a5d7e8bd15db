package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
)

func TestSearchVideos_DefaultsLimit(t *testing.T) {
	svc := &fakeVideosService{
		results: []*entities.VideoSearchResult{
			{ExternalID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up", ChannelName: "Rick Astley", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			{ExternalID: "9bZkp7q19f0", Title: "Gangnam Style", ChannelName: "officialpsy", URL: "https://www.youtube.com/watch?v=9bZkp7q19f0"},
		},
	}
	ctrl := NewVideosController(svc, nil)

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/?q=classic+hits", nil)
	rec := httptest.NewRecorder()

	if err := ctrl.SearchVideos(e.NewContext(req, rec)); err != nil {
		t.Fatalf("SearchVideos() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotQuery != "classic hits" {
		t.Errorf("query = %q, want %q", svc.gotQuery, "classic hits")
	}
	if svc.gotLimit != 5 {
		t.Errorf("limit = %d, want default 5", svc.gotLimit)
	}

	var resp struct {
		Data []struct {
			ExternalID string `json:"external_id"`
			URL        string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("got %d hits, want 2", len(resp.Data))
	}
	if resp.Data[0].ExternalID != "dQw4w9WgXcQ" {
		t.Errorf("hit external_id = %q, want dQw4w9WgXcQ", resp.Data[0].ExternalID)
	}
}

func TestSearchVideos_RequiresQuery(t *testing.T) {
	ctrl := NewVideosController(&fakeVideosService{}, nil)

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	if err := ctrl.SearchVideos(e.NewContext(req, rec)); err != nil {
		t.Fatalf("SearchVideos() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchVideos_MapsBackendFailure(t *testing.T) {
	svc := &fakeVideosService{searchErr: usecaseErrors.ErrSearchUnavailable}
	ctrl := NewVideosController(svc, nil)

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/?q=lofi", nil)
	rec := httptest.NewRecorder()

	if err := ctrl.SearchVideos(e.NewContext(req, rec)); err != nil {
		t.Fatalf("SearchVideos() error = %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Code != 2005 {
		t.Errorf("code = %d, want 2005", resp.Code)
	}
}
