//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

type bankResponse struct {
	MoneyBalance int64 `json:"money_balance"`
	BankBalance  int64 `json:"bank_balance"`
}

func TestDepositAndWithdraw(t *testing.T) {
	id := characterID(5)
	registerCharacter(t, id)

	resp, body := makeRequest(t, "POST", "/api/v1/bank/deposit", map[string]interface{}{
		"character_id": id,
		"amount":       200,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Deposit returned %d: %s", resp.StatusCode, body)
	}

	var after bankResponse
	if err := json.Unmarshal(body, &after); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if after.BankBalance < 200 {
		t.Errorf("Expected bank balance >= 200 after deposit, got %d", after.BankBalance)
	}

	resp, body = makeRequest(t, "POST", "/api/v1/bank/withdraw", map[string]interface{}{
		"character_id": id,
		"amount":       200,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Withdraw returned %d: %s", resp.StatusCode, body)
	}
}

func TestWithdrawBeyondBankRejected(t *testing.T) {
	id := characterID(6)
	registerCharacter(t, id)

	resp, _ := makeRequest(t, "POST", "/api/v1/bank/withdraw", map[string]interface{}{
		"character_id": id,
		"amount":       1_000_000,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", resp.StatusCode)
	}
}

func TestTransferBetweenCharacters(t *testing.T) {
	from := characterID(7)
	to := characterID(8)
	registerCharacter(t, from)
	registerCharacter(t, to)

	resp, body := makeRequest(t, "POST", "/api/v1/bank/transfer", map[string]interface{}{
		"from_id": from,
		"to_id":   to,
		"amount":  100,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Transfer returned %d: %s", resp.StatusCode, body)
	}
}
