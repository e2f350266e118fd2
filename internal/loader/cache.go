package loader

import (
	"bytes"
	"encoding/gob"
	"time"
)

// encodeResult/decodeResult serialise a Result with gob so pkg/cache can
// store it as opaque bytes keyed by term. Caching only elides *repeated*
// CLI invocations for the same term within the TTL window; the store is
// still read exactly once per process on a cache miss.
func encodeResult(result *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeResult(raw []byte) (*Result, error) {
	var result Result
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func ttlDuration(seconds int) time.Duration {
	if seconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(seconds) * time.Second
}
