package dto

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// DecodeStringList unmarshals a jsonb column holding a string array.
// Malformed or empty payloads decode to nil.
func DecodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

// EncodeStringList marshals a string slice for a jsonb column.
func EncodeStringList(list []string) datatypes.JSON {
	if len(list) == 0 {
		return nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
