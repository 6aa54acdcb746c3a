package event

import "encoding/json"

// DecodePayload returns the payload as T. Payloads published in-process are
// already T or *T; replayed dead letters arrive as generic maps and go
// through a JSON round trip.
func DecodePayload[T any](payload interface{}) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
