package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseAmount accepts the decimal string from a form field and rejects
// anything that is not a positive number.
func parseAmount(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("amount is required")
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a number")
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}

// parseMemberIDs decodes the JSON-encoded member id array the expense form
// submits (e.g. `["id1","id2"]`) into an ordered, deduplicated id list.
func parseMemberIDs(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("members is required")
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("members must be a JSON array of ids")
	}

	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("members must be a non-empty array")
	}
	return result, nil
}
