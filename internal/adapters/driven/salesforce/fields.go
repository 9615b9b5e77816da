package salesforce

import (
	"strconv"
	"strings"
)

// stringField extracts a string value from a query record. Dotted
// paths ("LinkedEntity.Name") traverse the nested relationship
// objects the query endpoint returns.
func stringField(record map[string]any, path string) string {
	value := fieldValue(record, path)
	s, _ := value.(string)
	return s
}

func intField(record map[string]any, path string) int {
	switch v := fieldValue(record, path).(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func int64Field(record map[string]any, path string) int64 {
	switch v := fieldValue(record, path).(type) {
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func fieldValue(record map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var current any = record
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}
