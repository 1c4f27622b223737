package describe

import (
	"context"
	"testing"

	"github.com/cityair/pollution-proxy/internal/testutil"
	"github.com/cityair/pollution-proxy/pkg/client"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	api, err := client.New(client.DefaultConfig("https://api.example.com", "user", "pass"))
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}
	return NewClient(api, baseURL)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := newTestClient(t, "")
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
}

func TestClient_Summary(t *testing.T) {
	descriptions := testutil.NewMockDescriptions()
	defer descriptions.Close()
	descriptions.SetExtract("Zurich", "Zurich is the largest city in Switzerland.")

	c := newTestClient(t, descriptions.URL())

	extract, err := c.Summary(context.Background(), "Zurich")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if extract != "Zurich is the largest city in Switzerland." {
		t.Errorf("Extract = %q, want the configured summary", extract)
	}
}

func TestClient_Summary_NameIsEscaped(t *testing.T) {
	descriptions := testutil.NewMockDescriptions()
	defer descriptions.Close()
	descriptions.SetExtract("New York", "The most populous US city.")

	c := newTestClient(t, descriptions.URL())

	extract, err := c.Summary(context.Background(), "New York")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if extract == "" {
		t.Error("Extract is empty, want the configured summary for the escaped name")
	}
}

func TestClient_Summary_NotFound(t *testing.T) {
	descriptions := testutil.NewMockDescriptions()
	defer descriptions.Close()

	c := newTestClient(t, descriptions.URL())

	_, err := c.Summary(context.Background(), "Atlantis")
	if err == nil {
		t.Fatal("Expected error for unknown page")
	}
}

func TestClient_Summary_ServerFailure(t *testing.T) {
	descriptions := testutil.NewMockDescriptions()
	defer descriptions.Close()
	descriptions.FailFor("Berlin")

	c := newTestClient(t, descriptions.URL())

	_, err := c.Summary(context.Background(), "Berlin")
	if err == nil {
		t.Fatal("Expected error for failing lookup")
	}
}

func TestClient_Summary_AbsentExtract(t *testing.T) {
	descriptions := testutil.NewMockDescriptions()
	defer descriptions.Close()
	descriptions.SetExtract("Bielefeld", "")

	c := newTestClient(t, descriptions.URL())

	extract, err := c.Summary(context.Background(), "Bielefeld")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if extract != "" {
		t.Errorf("Extract = %q, want empty for absent field", extract)
	}
}
