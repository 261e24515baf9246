package api

import "encoding/json"

// jsonCodec marshals plain Go structs for connect handlers and clients. The
// service's message types are hand-written rather than protobuf-generated,
// so the stock protojson codec cannot serve them.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}
