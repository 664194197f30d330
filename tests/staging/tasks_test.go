//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

type taskListResponse struct {
	Message string `json:"message"`
	Data    []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Metric string `json:"metric"`
		Goal   int64  `json:"goal"`
	} `json:"data"`
}

func TestListTasks(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/tasks", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var tasks taskListResponse
	if err := json.Unmarshal(body, &tasks); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(tasks.Data) == 0 {
		t.Error("Expected at least one seeded task definition")
	}
}

func TestRecordProgressAndFetch(t *testing.T) {
	id := characterID(9)
	registerCharacter(t, id)

	resp, body := makeRequest(t, "POST", "/api/v1/tasks/progress", map[string]interface{}{
		"character_id": id,
		"metric":       "crimes_committed",
		"value":        1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Record progress returned %d: %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "GET", fmt.Sprintf("/api/v1/tasks/progress/%d", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Get progress returned %d: %s", resp.StatusCode, body)
	}
}
