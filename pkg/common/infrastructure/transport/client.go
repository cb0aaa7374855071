package transport

import (
	"context"
	"io"
	"time"

	"google.golang.org/grpc"
)

// Client issues calls on a connection with a per-call deadline and turns
// status errors back into domain errors.
type Client struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
	codes   ErrorCodes
}

func NewClient(conn grpc.ClientConnInterface, timeout time.Duration, codes ErrorCodes) *Client {
	return &Client{conn: conn, timeout: timeout, codes: codes}
}

func (c *Client) Invoke(ctx context.Context, method string, req, resp any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.codes.FromStatus(c.conn.Invoke(ctx, method, req, resp))
}

// Stream sends req on a server stream and calls recv for every message until
// the server closes it. newMsg allocates the value each message decodes into.
func (c *Client) Stream(ctx context.Context, desc *grpc.StreamDesc, method string, req any, newMsg func() any, recv func(any)) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	stream, err := c.conn.NewStream(ctx, desc, method)
	if err != nil {
		return c.codes.FromStatus(err)
	}
	if err := stream.SendMsg(req); err != nil {
		return c.codes.FromStatus(err)
	}
	if err := stream.CloseSend(); err != nil {
		return c.codes.FromStatus(err)
	}
	for {
		msg := newMsg()
		err := stream.RecvMsg(msg)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return c.codes.FromStatus(err)
		}
		recv(msg)
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
