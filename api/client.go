package api

import (
	"context"

	"connectrpc.com/connect"
)

// Client calls the negotiation service over connect RPC.
type Client struct {
	start      *connect.Client[StartNegotiationRequest, StartNegotiationResponse]
	exchange   *connect.Client[ExchangeRequest, ExchangeResponse]
	transcript *connect.Client[GetTranscriptRequest, GetTranscriptResponse]
}

// NewClient creates a Client against a base URL such as
// "http://localhost:8090". An *http.Client satisfies the HTTPClient
// parameter.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &Client{
		start:      connect.NewClient[StartNegotiationRequest, StartNegotiationResponse](httpClient, baseURL+ProcedureStartNegotiation, opts...),
		exchange:   connect.NewClient[ExchangeRequest, ExchangeResponse](httpClient, baseURL+ProcedureExchange, opts...),
		transcript: connect.NewClient[GetTranscriptRequest, GetTranscriptResponse](httpClient, baseURL+ProcedureGetTranscript, opts...),
	}
}

// StartNegotiation opens a new session.
func (c *Client) StartNegotiation(ctx context.Context, req *StartNegotiationRequest) (*StartNegotiationResponse, error) {
	res, err := c.start.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

// Exchange advances a session by one counterpart line.
func (c *Client) Exchange(ctx context.Context, req *ExchangeRequest) (*ExchangeResponse, error) {
	res, err := c.exchange.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

// GetTranscript fetches a session's state and, once terminal, its summary.
func (c *Client) GetTranscript(ctx context.Context, req *GetTranscriptRequest) (*GetTranscriptResponse, error) {
	res, err := c.transcript.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}
