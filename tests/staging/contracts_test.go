//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

type contractResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reward int64  `json:"reward"`
}

func TestPostAndFulfillContract(t *testing.T) {
	poster := characterID(10)
	target := characterID(11)
	fulfiller := characterID(12)
	registerCharacter(t, poster)
	registerCharacter(t, target)
	registerCharacter(t, fulfiller)

	resp, body := makeRequest(t, "POST", "/api/v1/contracts", map[string]interface{}{
		"poster_id":   poster,
		"target_id":   target,
		"reward":      100,
		"ttl_seconds": 3600,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Post contract returned %d: %s", resp.StatusCode, body)
	}

	var posted contractResponse
	if err := json.Unmarshal(body, &posted); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if posted.Status != "open" {
		t.Errorf("Expected status open, got %s", posted.Status)
	}

	resp, body = makeRequest(t, "POST", fmt.Sprintf("/api/v1/contracts/%s/fulfill", posted.ID), map[string]interface{}{
		"fulfiller_id": fulfiller,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Fulfill returned %d: %s", resp.StatusCode, body)
	}

	var fulfilled contractResponse
	if err := json.Unmarshal(body, &fulfilled); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if fulfilled.Status != "fulfilled" {
		t.Errorf("Expected status fulfilled, got %s", fulfilled.Status)
	}
}

func TestListOpenContracts(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/contracts", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
}
