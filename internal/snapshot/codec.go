package snapshot

import (
	"fmt"

	"carrental/internal/company"

	"go.mongodb.org/mongo-driver/bson"
)

func Encode(s *Snapshot) ([]byte, error) {
	data, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := bson.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return &s, nil
}

// Marshal captures and encodes a company in one step.
func Marshal(c *company.Company) ([]byte, error) {
	return Encode(Capture(c))
}

// Unmarshal decodes and restores a company in one step.
func Unmarshal(data []byte, opts ...company.Option) (*company.Company, error) {
	s, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Restore(s, opts...)
}
