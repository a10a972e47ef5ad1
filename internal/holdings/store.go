package holdings

import (
	"encoding/json"
	"os"
	"time"

	"CoinSentinel/internal/model"
)

// LoadLedger reads the ledger from a JSON file. Returns an empty ledger if
// the file doesn't exist.
func LoadLedger(filePath string) (*model.Ledger, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Ledger{}, nil
		}
		return nil, err
	}
	var ledger model.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}

// SaveLedger writes the ledger to a JSON file.
func SaveLedger(filePath string, ledger *model.Ledger) error {
	ledger.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
