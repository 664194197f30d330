//go:build staging

package staging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	stagingURL string
	client     *http.Client

	// baseCharacterID gives each run a fresh ID range so reruns against
	// the same database never collide on existing characters.
	baseCharacterID int64
)

func TestMain(m *testing.M) {
	stagingURL = os.Getenv("API_URL")
	if stagingURL == "" {
		stagingURL = "http://localhost:8080"
	}

	client = &http.Client{
		Timeout: 10 * time.Second,
	}

	baseCharacterID = time.Now().UnixNano() % 1_000_000_000

	os.Exit(m.Run())
}

// characterID returns a run-unique character ID for test slot n.
func characterID(n int64) int64 {
	return baseCharacterID + n
}

// Helper function to make requests
func makeRequest(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	url := fmt.Sprintf("%s%s", stagingURL, path)
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = "test-api-key"
	}
	req.Header.Set("X-API-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return resp, respBody
}

// registerCharacter creates a character and fails the test on error.
func registerCharacter(t *testing.T, id int64) {
	t.Helper()

	resp, body := makeRequest(t, "POST", "/api/v1/character/register", map[string]interface{}{
		"character_id": id,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register returned %d: %s", resp.StatusCode, body)
	}
}
