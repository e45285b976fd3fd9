package services

import (
	"context"
	"strings"

	"github.com/scienceol/chemcheck/pkg/core/compound"
	"github.com/scienceol/chemcheck/pkg/core/validate"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const CompoundServiceName = "chemcheck.v1.CompoundService"

const (
	resolveMethod  = "/" + CompoundServiceName + "/Resolve"
	validateMethod = "/" + CompoundServiceName + "/Validate"
)

// CompoundServiceServer takes and returns google.protobuf.Struct so the
// service needs no generated message types. Resolve reads {"name"};
// Validate reads {"reactant", "product"}.
type CompoundServiceServer interface {
	Resolve(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var CompoundServiceDesc = grpc.ServiceDesc{
	ServiceName: CompoundServiceName,
	HandlerType: (*CompoundServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: resolveHandler},
		{MethodName: "Validate", Handler: validateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chemcheck/v1/compound.proto",
}

func RegisterCompoundServiceServer(s grpc.ServiceRegistrar, srv CompoundServiceServer) {
	s.RegisterService(&CompoundServiceDesc, srv)
}

func resolveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := &structpb.Struct{}
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompoundServiceServer).Resolve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: resolveMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(CompoundServiceServer).Resolve(ctx, req.(*structpb.Struct))
	})
}

func validateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := &structpb.Struct{}
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompoundServiceServer).Validate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: validateMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(CompoundServiceServer).Validate(ctx, req.(*structpb.Struct))
	})
}

type CompoundService struct {
	compoundSvc compound.Service
	validateSvc validate.Service
}

func NewCompoundService(compoundSvc compound.Service, validateSvc validate.Service) *CompoundService {
	return &CompoundService{compoundSvc: compoundSvc, validateSvc: validateSvc}
}

func (s *CompoundService) Resolve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, ok := stringField(req, "name")
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}

	resp, err := structpb.NewStruct(s.compoundSvc.Resolve(ctx, strings.TrimSpace(name)).AsMap())
	if err != nil {
		logger.Errorf(ctx, "CompoundService.Resolve encode err: %v", err)
		return nil, status.Errorf(codes.Internal, "encode result failed: %v", err)
	}
	return resp, nil
}

func (s *CompoundService) Validate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	reactant, _ := stringField(req, "reactant")
	product, _ := stringField(req, "product")

	report := s.validateSvc.Validate(ctx, &validate.ValidateReq{Reactant: reactant, Product: product})
	resp, err := structpb.NewStruct(report.AsMap())
	if err != nil {
		logger.Errorf(ctx, "CompoundService.Validate encode err: %v", err)
		return nil, status.Errorf(codes.Internal, "encode report failed: %v", err)
	}
	return resp, nil
}

func stringField(req *structpb.Struct, key string) (string, bool) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", false
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false
	}
	return s.StringValue, true
}
