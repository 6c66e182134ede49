// Package server exposes storefront sessions over gRPC.
//
// Messages are well-known protobuf types: commands travel as Any whose type
// URL names the command and whose value is a Struct of arguments, and every
// response is a Struct.
package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "storefront.v1.Storefront"

// Full method names.
const (
	MethodOpenSession  = "/" + ServiceName + "/OpenSession"
	MethodHandle       = "/" + ServiceName + "/Handle"
	MethodGetView      = "/" + ServiceName + "/GetView"
	MethodGetJournal   = "/" + ServiceName + "/GetJournal"
	MethodCloseSession = "/" + ServiceName + "/CloseSession"
)

// StorefrontServer is the server API of the storefront service.
type StorefrontServer interface {
	OpenSession(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Handle(context.Context, *anypb.Any) (*structpb.Struct, error)
	GetView(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetJournal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseSession(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// ServiceDesc describes the storefront service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "OpenSession",
			Handler: unaryHandler(MethodOpenSession, func(srv StorefrontServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return srv.OpenSession(ctx, in)
			}),
		},
		{
			MethodName: "Handle",
			Handler: unaryHandler(MethodHandle, func(srv StorefrontServer, ctx context.Context, in *anypb.Any) (any, error) {
				return srv.Handle(ctx, in)
			}),
		},
		{
			MethodName: "GetView",
			Handler: unaryHandler(MethodGetView, func(srv StorefrontServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return srv.GetView(ctx, in)
			}),
		},
		{
			MethodName: "GetJournal",
			Handler: unaryHandler(MethodGetJournal, func(srv StorefrontServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return srv.GetJournal(ctx, in)
			}),
		},
		{
			MethodName: "CloseSession",
			Handler: unaryHandler(MethodCloseSession, func(srv StorefrontServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return srv.CloseSession(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront.proto",
}

// RegisterStorefrontServer registers srv on s.
func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler[Req any](
	fullMethod string,
	call func(StorefrontServer, context.Context, *Req) (any, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StorefrontServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StorefrontServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
