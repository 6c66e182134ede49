// Package client is a Go client for the storefront gRPC service.
package client

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/eventsource"
	"storefront/server"
)

const sessionIDKey = "session_id"

// formatEndpoint converts an endpoint to gRPC target format. Paths starting
// with '/' or './' are Unix domain sockets.
func formatEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "/") || strings.HasPrefix(endpoint, "./") {
		return "unix://" + endpoint
	}
	return endpoint
}

// Client drives storefront sessions on a remote server.
type Client struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
}

// New connects to a storefront server at endpoint.
func New(endpoint string) (*Client, error) {
	conn, err := grpc.NewClient(formatEndpoint(endpoint),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, TransportError(err)
	}
	return &Client{cc: conn, conn: conn}, nil
}

// FromEnv connects using an environment variable with fallback.
func FromEnv(envVar, defaultEndpoint string) (*Client, error) {
	endpoint := os.Getenv(envVar)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return New(endpoint)
}

// FromConn creates a client from an existing connection. Close does not
// close a connection the client did not open.
func FromConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// OpenSession starts a new session and returns its id.
func (c *Client) OpenSession(ctx context.Context) (uuid.UUID, error) {
	out := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, server.MethodOpenSession, &emptypb.Empty{}, out); err != nil {
		return uuid.Nil, GRPCError(err)
	}
	id, err := uuid.Parse(out.GetFields()[sessionIDKey].GetStringValue())
	if err != nil {
		return uuid.Nil, BadResponseError("session id is not a UUID")
	}
	return id, nil
}

// Send runs a named command with arguments and returns the resulting view.
func (c *Client) Send(ctx context.Context, session uuid.UUID, command string, args map[string]any) (*structpb.Struct, error) {
	if command == "" {
		return nil, InvalidArgumentError("command name not set")
	}
	fields := make(map[string]any, len(args)+1)
	for k, v := range args {
		fields[k] = v
	}
	fields[sessionIDKey] = session.String()

	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, InvalidArgumentError("failed to encode arguments: " + err.Error())
	}
	value, err := proto.Marshal(payload)
	if err != nil {
		return nil, InvalidArgumentError("failed to marshal command: " + err.Error())
	}
	cmd := &anypb.Any{TypeUrl: eventsource.TypeURL(command), Value: value}

	out := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, server.MethodHandle, cmd, out); err != nil {
		return nil, GRPCError(err)
	}
	return out, nil
}

func (c *Client) AddToCart(ctx context.Context, session uuid.UUID, productID string) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdAddToCart, map[string]any{"product_id": productID})
}

func (c *Client) RemoveFromCart(ctx context.Context, session uuid.UUID, productID string) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdRemoveFromCart, map[string]any{"product_id": productID})
}

func (c *Client) UpdateQuantity(ctx context.Context, session uuid.UUID, productID string, quantity int) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdUpdateQuantity, map[string]any{"product_id": productID, "quantity": quantity})
}

func (c *Client) ClearCart(ctx context.Context, session uuid.UUID) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdClearCart, nil)
}

func (c *Client) RequestCheckout(ctx context.Context, session uuid.UUID) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdRequestCheckout, nil)
}

func (c *Client) CompleteCheckout(ctx context.Context, session uuid.UUID) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdCompleteCheckout, nil)
}

func (c *Client) SetSearchTerm(ctx context.Context, session uuid.UUID, term string) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdSetSearchTerm, map[string]any{"term": term})
}

func (c *Client) SelectCategory(ctx context.Context, session uuid.UUID, category string) (*structpb.Struct, error) {
	return c.Send(ctx, session, server.CmdSelectCategory, map[string]any{"category": category})
}

// SetSort changes both the sort field and direction.
func (c *Client) SetSort(ctx context.Context, session uuid.UUID, field, order string) (*structpb.Struct, error) {
	if _, err := c.Send(ctx, session, server.CmdSetSortField, map[string]any{"field": field}); err != nil {
		return nil, err
	}
	return c.Send(ctx, session, server.CmdSetSortOrder, map[string]any{"order": order})
}

// View fetches the current view of a session.
func (c *Client) View(ctx context.Context, session uuid.UUID) (*structpb.Struct, error) {
	out := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, server.MethodGetView, sessionRequest(session), out); err != nil {
		return nil, GRPCError(err)
	}
	return out, nil
}

// Journal fetches the event journal of a session.
func (c *Client) Journal(ctx context.Context, session uuid.UUID) (*structpb.Struct, error) {
	out := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, server.MethodGetJournal, sessionRequest(session), out); err != nil {
		return nil, GRPCError(err)
	}
	return out, nil
}

func (c *Client) CloseSession(ctx context.Context, session uuid.UUID) error {
	if err := c.cc.Invoke(ctx, server.MethodCloseSession, sessionRequest(session), &emptypb.Empty{}); err != nil {
		return GRPCError(err)
	}
	return nil
}

func sessionRequest(id uuid.UUID) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		sessionIDKey: structpb.NewStringValue(id.String()),
	}}
}
