package correlation

import (
	"encoding/json"
)

// Row is the flattened form of a record as a storage backend keeps it.
type Row struct {
	Id          string
	Status      Status
	Payload     []byte
	Tags        []byte
	CreatedOn   int64
	CompletedOn *int64
	ExpiresOn   int64
}

func ToRecord[T any](r *Row) (*Record[T], error) {
	var payload T
	if r.Payload != nil {
		if err := json.Unmarshal(r.Payload, &payload); err != nil {
			return nil, err
		}
	}

	var tags map[string]string
	if r.Tags != nil {
		if err := json.Unmarshal(r.Tags, &tags); err != nil {
			return nil, err
		}
	}

	return &Record[T]{
		Id:          r.Id,
		Status:      r.Status,
		Payload:     payload,
		Tags:        tags,
		CreatedOn:   r.CreatedOn,
		CompletedOn: r.CompletedOn,
		ExpiresOn:   r.ExpiresOn,
	}, nil
}
