//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

type characterResponse struct {
	ID           int64 `json:"id"`
	Level        int   `json:"level"`
	MoneyBalance int64 `json:"money_balance"`
	BankBalance  int64 `json:"bank_balance"`
}

func TestRegisterAndFetchCharacter(t *testing.T) {
	id := characterID(1)
	registerCharacter(t, id)

	resp, body := makeRequest(t, "GET", fmt.Sprintf("/api/v1/character/%d", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var ch characterResponse
	if err := json.Unmarshal(body, &ch); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if ch.ID != id {
		t.Errorf("Expected character ID %d, got %d", id, ch.ID)
	}
	if ch.Level < 1 {
		t.Errorf("Expected level >= 1, got %d", ch.Level)
	}
}

func TestFetchUnknownCharacter(t *testing.T) {
	resp, _ := makeRequest(t, "GET", "/api/v1/character/999999999999", nil)

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestGetInventoryEmpty(t *testing.T) {
	id := characterID(2)
	registerCharacter(t, id)

	resp, body := makeRequest(t, "GET", fmt.Sprintf("/api/v1/character/%d/inventory", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
}
