package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"github.com/scienceol/chemcheck/pkg/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func skipLog(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/grpc.reflection.") ||
		strings.HasPrefix(fullMethod, "/grpc.health.")
}

func UnaryLogInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if skipLog(info.FullMethod) {
			return handler(ctx, req)
		}
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Infof(ctx, "grpc %s code: %s latency: %s", info.FullMethod, status.Code(err), time.Since(start))
		return resp, err
	}
}

// UnaryRecoveryInterceptor turns a handler panic into codes.Internal.
func UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		if panicErr := utils.SafelyRun(func() { resp, err = handler(ctx, req) }); panicErr != nil {
			logger.Errorf(ctx, "grpc %s panic: %+v", info.FullMethod, panicErr)
			return nil, status.Error(codes.Internal, "internal server error")
		}
		return resp, err
	}
}

func StreamLogInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if skipLog(info.FullMethod) {
			return handler(srv, ss)
		}
		start := time.Now()
		err := handler(srv, ss)
		logger.Infof(ss.Context(), "grpc stream %s code: %s latency: %s", info.FullMethod, status.Code(err), time.Since(start))
		return err
	}
}
