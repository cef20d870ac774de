package we

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type EntityEncoder[T comparable] interface {
	Encode(w http.ResponseWriter, r *http.Request, e Entity[T]) error
}

type EntitySerializer[T comparable] func(entity Entity[T]) (map[string]any, error)

func StateSerializer[T comparable](entity Entity[T]) (map[string]any, error) {
	serialized, err := json.Marshal(entity.State)
	if err != nil {
		return nil, err
	}

	resource := make(map[string]any)
	if err = json.Unmarshal(serialized, &resource); err != nil {
		return nil, errors.Wrap(err, "state is not a json object")
	}

	return resource, nil
}

func NewResourceEncoder[T comparable]() ResourceEncoder[T] {
	return ResourceEncoder[T]{Serializer: StateSerializer[T]}
}

type ResourceEncoder[T comparable] struct {
	Serializer EntitySerializer[T]
}

func (encoder ResourceEncoder[T]) Encode(w http.ResponseWriter, r *http.Request, e Entity[T]) error {
	serialize := encoder.Serializer
	if serialize == nil {
		serialize = StateSerializer[T]
	}

	resource, err := serialize(e)
	if err != nil {
		http.Error(w, "failed to encode resource", http.StatusInternalServerError)
		return err
	}

	resource["$type"] = e.Type
	resource["$revision"] = e.Revision
	if updated := e.Revision.Timestamp(); updated != "" {
		resource["$updated"] = updated
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	return json.NewEncoder(w).Encode(resource)
}
