package server

import "github.com/chazu/rvec/vec/dist"

// cborCodec carries the dist wire messages. It satisfies both the Connect
// and the grpc-go codec interfaces.
type cborCodec struct{}

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Marshal(v any) ([]byte, error) { return dist.Marshal(v) }

func (cborCodec) Unmarshal(data []byte, v any) error { return dist.Unmarshal(data, v) }
