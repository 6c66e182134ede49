package server

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/eventsource"
	"storefront/session"
)

const tracerName = "storefront/server"

// Server implements StorefrontServer on top of a session store.
type Server struct {
	store  *session.Store
	router *eventsource.CommandRouter[*session.Session]
	logger *zap.Logger
	tracer trace.Tracer
}

// New creates a server. Spans go to the global tracer provider.
func New(store *session.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:  store,
		router: newCommandRouter(),
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// Register returns a RegisterFunc installing the service.
func (s *Server) Register() eventsource.RegisterFunc {
	return func(gs *grpc.Server) {
		RegisterStorefrontServer(gs, s)
	}
}

// Commands lists the command names Handle accepts.
func (s *Server) Commands() []string {
	return s.router.Commands()
}

func (s *Server) OpenSession(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	_, span := s.tracer.Start(ctx, "storefront.OpenSession")
	defer span.End()

	sess := s.store.Open()
	span.SetAttributes(attribute.String("session", sess.ID().String()))

	return structpb.NewStruct(map[string]any{keySessionID: sess.ID().String()})
}

// Handle runs one command against a session and returns the resulting view.
func (s *Server) Handle(ctx context.Context, cmd *anypb.Any) (*structpb.Struct, error) {
	command := eventsource.Name(cmd.GetTypeUrl())
	_, span := s.tracer.Start(ctx, "storefront.Handle", trace.WithAttributes(attribute.String("command", command)))
	defer span.End()

	payload, err := eventsource.DecodeCommand(cmd)
	if err != nil {
		return nil, s.fail(span, err)
	}
	sess, err := s.lookup(payload)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.String("session", sess.ID().String()))

	s.logger.Info("handling command",
		zap.String("command", command),
		zap.String("session", sess.ID().String()),
	)
	if err := s.router.Dispatch(sess, cmd.GetTypeUrl(), payload); err != nil {
		return nil, s.fail(span, err)
	}

	view, err := encodeView(sess.ID(), sess.View())
	if err != nil {
		return nil, s.fail(span, err)
	}
	return view, nil
}

func (s *Server) GetView(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	_, span := s.tracer.Start(ctx, "storefront.GetView")
	defer span.End()

	sess, err := s.lookup(req)
	if err != nil {
		return nil, s.fail(span, err)
	}
	view, err := encodeView(sess.ID(), sess.View())
	if err != nil {
		return nil, s.fail(span, err)
	}
	return view, nil
}

func (s *Server) GetJournal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	_, span := s.tracer.Start(ctx, "storefront.GetJournal")
	defer span.End()

	sess, err := s.lookup(req)
	if err != nil {
		return nil, s.fail(span, err)
	}
	journal, err := encodeJournal(sess.Journal())
	if err != nil {
		return nil, s.fail(span, err)
	}
	return journal, nil
}

func (s *Server) CloseSession(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	_, span := s.tracer.Start(ctx, "storefront.CloseSession")
	defer span.End()

	id, err := sessionID(req)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := s.store.Close(id); err != nil {
		return nil, s.fail(span, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) lookup(req *structpb.Struct) (*session.Session, error) {
	id, err := sessionID(req)
	if err != nil {
		return nil, err
	}
	return s.store.Get(id)
}

func sessionID(req *structpb.Struct) (uuid.UUID, error) {
	raw, err := eventsource.RequireString(req, keySessionID)
	if err != nil {
		return uuid.Nil, err
	}
	return eventsource.ParseRoot(raw)
}

// fail records err on the span and converts it to a gRPC status.
func (s *Server) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	mapped := eventsource.MapCommandError(err)
	s.logger.Debug("request failed", zap.Error(mapped))
	return mapped
}
