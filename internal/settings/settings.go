// Package settings reads the user's watch lists for the report's market
// data section.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// UserSettings lists the currency and stock symbols to quote, in the order
// the user configured them. The report preserves that order.
type UserSettings struct {
	UserCurrencies []string `json:"user_currencies"`
	UserStocks     []string `json:"user_stocks"`
}

// Load reads settings from a JSON file. A missing or malformed file is
// fatal; reports without a symbol configuration are requested with empty
// lists, not by guessing.
func Load(path string) (UserSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UserSettings{}, fmt.Errorf("read user settings %s: %w", path, err)
	}

	var s UserSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return UserSettings{}, fmt.Errorf("parse user settings %s: %w", path, err)
	}
	return s, nil
}
