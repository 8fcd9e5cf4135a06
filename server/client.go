package server

import (
	"context"

	"connectrpc.com/connect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/chazu/rvec/vec/dist"
)

// Client calls the vector service over Connect, or gRPC when built with
// connect.WithGRPC.
type Client struct {
	put   *connect.Client[dist.PutRequest, dist.PutResponse]
	get   *connect.Client[dist.GetRequest, dist.GetResponse]
	check *connect.Client[dist.CheckRequest, dist.CheckResponse]
	poke  *connect.Client[dist.PokeRequest, dist.PokeResponse]
}

// NewClient creates a Client for the service at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = append([]connect.ClientOption{connect.WithCodec(cborCodec{})}, opts...)
	return &Client{
		put:   connect.NewClient[dist.PutRequest, dist.PutResponse](httpClient, baseURL+PutProcedure, opts...),
		get:   connect.NewClient[dist.GetRequest, dist.GetResponse](httpClient, baseURL+GetProcedure, opts...),
		check: connect.NewClient[dist.CheckRequest, dist.CheckResponse](httpClient, baseURL+CheckProcedure, opts...),
		poke:  connect.NewClient[dist.PokeRequest, dist.PokeResponse](httpClient, baseURL+PokeProcedure, opts...),
	}
}

// Put stores a vector.
func (c *Client) Put(ctx context.Context, req *dist.PutRequest) (*dist.PutResponse, error) {
	resp, err := c.put.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// Get fetches a vector.
func (c *Client) Get(ctx context.Context, req *dist.GetRequest) (*dist.GetResponse, error) {
	resp, err := c.get.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// Check runs a predicate.
func (c *Client) Check(ctx context.Context, req *dist.CheckRequest) (*dist.CheckResponse, error) {
	resp, err := c.check.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// Poke copies an element range between stored vectors.
func (c *Client) Poke(ctx context.Context, req *dist.PokeRequest) (*dist.PokeResponse, error) {
	resp, err := c.poke.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// ---------------------------------------------------------------------------
// grpc-go client
// ---------------------------------------------------------------------------

// GRPCClient calls the vector service with grpc-go over cleartext HTTP/2.
type GRPCClient struct {
	conn *grpc.ClientConn
}

// DialGRPC connects to the service at target ("host:port").
func DialGRPC(target string) (*GRPCClient, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(cborCodec{})),
	)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn}, nil
}

// Close closes the connection.
func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Put stores a vector.
func (c *GRPCClient) Put(ctx context.Context, req *dist.PutRequest) (*dist.PutResponse, error) {
	var resp dist.PutResponse
	if err := c.conn.Invoke(ctx, PutProcedure, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches a vector.
func (c *GRPCClient) Get(ctx context.Context, req *dist.GetRequest) (*dist.GetResponse, error) {
	var resp dist.GetResponse
	if err := c.conn.Invoke(ctx, GetProcedure, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Check runs a predicate.
func (c *GRPCClient) Check(ctx context.Context, req *dist.CheckRequest) (*dist.CheckResponse, error) {
	var resp dist.CheckResponse
	if err := c.conn.Invoke(ctx, CheckProcedure, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Poke copies an element range between stored vectors.
func (c *GRPCClient) Poke(ctx context.Context, req *dist.PokeRequest) (*dist.PokeResponse, error) {
	var resp dist.PokeResponse
	if err := c.conn.Invoke(ctx, PokeProcedure, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
