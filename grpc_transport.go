package authclient

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// metadataAuthorization is the outgoing/incoming metadata key, lowercase
// per gRPC metadata conventions.
const metadataAuthorization = "authorization"

func (c *Client[T, R]) withBearer(ctx context.Context) context.Context {
	token := c.holder.Token()
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(metadataAuthorization, BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client[T, R]) observeGRPC(header metadata.MD, err error) {
	if values := header.Get(metadataAuthorization); len(values) > 0 {
		c.holder.SetToken(values[len(values)-1])
	}
	if status.Code(err) == codes.Unauthenticated {
		c.unauthorized.Publish(struct{}{})
	}
}

// UnaryClientInterceptor decorates every unary call with the current
// bearer token, harvests an authorization header from the server's
// response metadata, and maps Unauthenticated failures onto the
// unauthorized side channel. Errors pass through unchanged.
func (c *Client[T, R]) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = c.withBearer(ctx)

		var header metadata.MD
		opts = append(opts, grpc.Header(&header))

		err := invoker(ctx, method, req, reply, cc, opts...)
		c.observeGRPC(header, err)
		return err
	}
}

// StreamClientInterceptor attaches the bearer token to new streams and
// maps Unauthenticated stream-open failures onto the unauthorized side
// channel. Header harvesting is unary-only: blocking on stream headers
// here would serialize stream creation.
func (c *Client[T, R]) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		stream, err := streamer(c.withBearer(ctx), desc, cc, method, opts...)
		if status.Code(err) == codes.Unauthenticated {
			c.unauthorized.Publish(struct{}{})
		}
		return stream, err
	}
}
