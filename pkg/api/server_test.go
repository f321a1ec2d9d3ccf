package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/james-see/sf2sfz/pkg/converter"
	"github.com/james-see/sf2sfz/pkg/soundfont"
	"github.com/james-see/sf2sfz/pkg/soundfont/sftest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testBank() []byte {
	data := make([]int16, 100)
	for i := range data {
		data[i] = int16(i * 100)
	}
	return sftest.Bank{
		Presets: []sftest.Preset{
			{Name: "Test", Zones: []sftest.Zone{{{Op: soundfont.InstrumentID, Amount: 0}}}},
		},
		Instruments: []sftest.Instrument{
			{Name: "Inst", Zones: []sftest.Zone{{{Op: soundfont.SampleID, Amount: 0}}}},
		},
		Samples: []sftest.Sample{
			{Name: "Snd", Rate: 44100, OriginalPitch: 60, Data: data},
		},
	}.Bytes()
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	router := NewRouter(nil)

	for _, path := range []string{"/health", "/api/v1/health"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["status"] != "healthy" || body["service"] != "sf2sfz" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestListFormats(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if strings.Join(body["formats"], ",") != "sf2,sf3" {
		t.Errorf("formats = %v", body["formats"])
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/convert", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestInspect(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(nil).ServeHTTP(rec, uploadRequest(t, "/api/v1/inspect", "bank.sf2", testBank()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var summary converter.BankSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(summary.Presets) != 1 || summary.Presets[0].Name != "Test" || summary.Presets[0].Regions != 1 {
		t.Errorf("presets = %+v", summary.Presets)
	}
	if len(summary.Samples) != 1 || summary.Samples[0].Frames != 100 {
		t.Errorf("samples = %+v", summary.Samples)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected []string
	}{
		{
			"default name",
			"/api/v1/convert",
			[]string{"bank Test Samples/Snd.wav", "bank Test.sfz"},
		},
		{
			"named with preview",
			"/api/v1/convert?name=Piano&preview=true",
			[]string{"Piano Test Samples/Snd.wav", "Piano Test.mid", "Piano Test.sfz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewRouter(nil).ServeHTTP(rec, uploadRequest(t, tt.target, "bank.sf2", testBank()))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
				t.Errorf("Content-Type = %q", ct)
			}
			if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".zip") {
				t.Errorf("Content-Disposition = %q", cd)
			}

			zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
			if err != nil {
				t.Fatalf("response is not a zip: %v", err)
			}
			var names []string
			for _, f := range zr.File {
				names = append(names, f.Name)
			}
			sort.Strings(names)
			if strings.Join(names, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("entries = %v, want %v", names, tt.expected)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		status int
	}{
		{
			"no file",
			func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/v1/convert", nil)
			},
			http.StatusBadRequest,
		},
		{
			"not a soundfont",
			func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/v1/convert", "song.mid", []byte("MThd\x00\x00\x00\x06"))
			},
			http.StatusUnprocessableEntity,
		},
		{
			"inspect garbage",
			func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/v1/inspect", "x.sf2", []byte("RIFF\x04\x00\x00\x00sfbq"))
			},
			http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewRouter(nil).ServeHTTP(rec, tt.req(t))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected a JSON error body, got %s", rec.Body.String())
			}
		})
	}
}
