package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"taskAssignment/internal/apperr"
)

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that extracts and validates
// a Bearer token from incoming metadata and injects the Identity into the context.
// Methods listed in allowUnauthenticated bypass authentication (e.g., health checks).
func NewUnaryAuthInterceptor(v Verifier, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		id, err := Authenticate(v, authorizationFromMD(ctx))
		if err != nil {
			return nil, StatusFromError(err)
		}
		return handler(WithIdentity(ctx, id), req)
	}
}

func authorizationFromMD(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	// Incoming metadata keys are lowercased by grpc.
	if vals := md.Get("authorization"); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// RequireIdentity ensures an identity is present in context.
func RequireIdentity(ctx context.Context) (*Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing identity")
	}
	return id, nil
}

// StatusFromError maps the error taxonomy onto gRPC status codes. Only the
// client-safe message is carried.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var code codes.Code
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindDuplicateUsername, apperr.KindInvalidCredentials:
		code = codes.InvalidArgument
	case apperr.KindUnauthenticated:
		code = codes.Unauthenticated
	case apperr.KindForbidden:
		code = codes.PermissionDenied
	default:
		code = codes.Internal
	}
	return status.Error(code, apperr.PublicMessage(err))
}
