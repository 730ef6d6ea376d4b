package manifest

import "encoding/json"

// Record is one image's entry in the manifest. Only images that actually
// decoded get a record; Copyright is present only when embedded attribution
// was found.
type Record struct {
	Domain    string `json:"domain"`
	Iscc      string `json:"iscc"`
	Timestamp int64  `json:"timestamp"`
	Bytes     int    `json:"bytes"`
	Checksum  string `json:"checksum"`
	MimeType  string `json:"mime-type"`
	Copyright string `json:"copyright,omitempty"`
}

// Line serializes the record as a single JSONL line (without the trailing
// newline).
func (r *Record) Line() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
