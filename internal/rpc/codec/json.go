// Package codec registers a JSON wire codec for gRPC, used in place of
// protobuf marshaling since this repo's service messages (internal/rpc/pb)
// are plain Go structs rather than protoc-generated proto.Message
// implementations. gRPC's encoding package is built for exactly this kind
// of pluggable codec (see google.golang.org/grpc/encoding); registering
// one under a distinct content-subtype keeps every other part of the
// transport — TLS, interceptors, service descriptors, streaming — real,
// unmodified grpc-go. See SPEC_FULL.md §10.
package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name is the content-subtype this codec registers under. Clients select
// it per call with grpc.CallContentSubtype(Name); the server picks it up
// automatically from the request's "application/grpc+json" content-type.
const Name = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return Name }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
