package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/scienceol/chemcheck/pkg/core/compound"
	"github.com/scienceol/chemcheck/pkg/core/validate"
	"github.com/scienceol/chemcheck/pkg/grpc/services"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"github.com/scienceol/chemcheck/pkg/utils"
	ggrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewServer listens on port and serves in the background until the
// returned server is stopped.
func NewServer(ctx context.Context, port int, cSvc compound.Service, vSvc validate.Service) (*ggrpc.Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	s := newServer(cSvc, vSvc)
	utils.SafelyGo(func() {
		logger.Infof(ctx, "gRPC server starting on port %d", port)
		if err := s.Serve(lis); err != nil {
			logger.Errorf(ctx, "gRPC server error: %v", err)
		}
	}, func(err error) {
		logger.Errorf(ctx, "run gRPC server err: %+v", err)
	})

	return s, nil
}

func newServer(cSvc compound.Service, vSvc validate.Service) *ggrpc.Server {
	s := ggrpc.NewServer(
		ggrpc.ChainUnaryInterceptor(UnaryRecoveryInterceptor(), UnaryLogInterceptor()),
		ggrpc.StreamInterceptor(StreamLogInterceptor()),
	)
	reflection.Register(s)

	services.RegisterCompoundServiceServer(s, services.NewCompoundService(cSvc, vSvc))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(services.CompoundServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s
}
