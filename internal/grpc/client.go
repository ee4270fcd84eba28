package grpc

import (
	"context"

	"madrese/auth-service/internal/dto"

	"google.golang.org/grpc"
)

// Client calls SessionService over an existing connection.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) ResolveSession(ctx context.Context, req *ResolveSessionRequest, opts ...grpc.CallOption) (*ResolveSessionResponse, error) {
	out := new(ResolveSessionResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, ResolveSessionMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMenu(ctx context.Context, req *GetMenuRequest, opts ...grpc.CallOption) (*dto.MenuResponse, error) {
	out := new(dto.MenuResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, GetMenuMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
