package describe

import (
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"image-inspector/internal/sample"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func testSample() sample.Sample {
	return sample.Sample{ID: uuid.New(), X: 10, Y: 10, Hex: "#0A0A80", Name: "navy"}
}

func TestDescribe(t *testing.T) {
	s := testSample()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q, want test-model", req.Model)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Fatalf("unexpected message shape: %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[0].Content[0].Text, "#0A0A80") {
			t.Error("prompt does not mention the sampled color")
		}
		if !strings.Contains(req.Messages[0].Content[0].Text, "navy") {
			t.Error("prompt does not mention the nearest color name")
		}
		part := req.Messages[0].Content[1]
		if part.ImageURL == nil || !strings.HasPrefix(part.ImageURL.URL, "data:image/png;base64,") {
			t.Error("second content part is not a PNG data URI")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "  A muted blue panel edge.  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "test-key")
	res, err := c.Describe(testImage(64, 64), s)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if res.Text != "A muted blue panel edge." {
		t.Errorf("Text = %q", res.Text)
	}
	if res.SampleID != s.ID {
		t.Error("result does not carry the sample's ID")
	}
}

func TestDescribeNoAPIKey(t *testing.T) {
	c := NewClient("http://localhost:9", "m", "")
	_, err := c.Describe(testImage(8, 8), testSample())
	if err == nil {
		t.Fatal("expected an error")
	}
	if err != ErrNoAPIKey {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestDescribeServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m", "k")
	_, err := c.Describe(testImage(8, 8), testSample())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("err = %v, want status and body in message", err)
	}
}

func TestDescribeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m", "k")
	if _, err := c.Describe(testImage(8, 8), testSample()); err == nil {
		t.Fatal("expected an error for an empty choice list")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "", "k")
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.Model != DefaultModel {
		t.Errorf("Model = %q", c.Model)
	}

	c = NewClient("http://example.com/v1/", "m", "k")
	if c.BaseURL != "http://example.com/v1" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", c.BaseURL)
	}
}
