package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// flagValue decodes a checkbox state written as a JSON bool, a 0/1 number or null.
type flagValue bool

func (f *flagValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", "0":
		*f = false
		return nil
	case "true", "1":
		*f = true
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid flag value %s", data)
	}
	*f = n != 0
	return nil
}

// seqValue decodes a sequence number. Anything that is not an integer decodes to
// 0, which no roster or label table contains.
type seqValue int

func (s *seqValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		*s = 0
		return nil
	}
	*s = seqValue(n)
	return nil
}
