package api

import (
	"net/http"

	"connectrpc.com/connect"
)

// NewHandler mounts the negotiation service's procedures and returns the
// path prefix they live under together with the handler, in the shape
// http.ServeMux.Handle expects. Extra handler options are applied after the
// service's JSON codec.
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ProcedureStartNegotiation, connect.NewUnaryHandler(ProcedureStartNegotiation, svc.StartNegotiation, opts...))
	mux.Handle(ProcedureExchange, connect.NewUnaryHandler(ProcedureExchange, svc.Exchange, opts...))
	mux.Handle(ProcedureGetTranscript, connect.NewUnaryHandler(ProcedureGetTranscript, svc.GetTranscript, opts...))

	return "/haggle.v1.NegotiationService/", mux
}
