// Package verifier defines the token verification contract served over
// gRPC: the service descriptor, the wire encoding of a principal, the error
// encoding and a client for downstream services.
package verifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/model"
)

const (
	ServiceName      = "studypartner.auth.v1.TokenVerifier"
	VerifyFullMethod = "/" + ServiceName + "/Verify"

	// ErrorDomain is set on every ErrorInfo detail.
	ErrorDomain = "auth.studypartner"
	// AuthorizationKey is the metadata key carrying the bearer token.
	AuthorizationKey = "authorization"
)

// Server is implemented by the verification handler.
type Server interface {
	Verify(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the TokenVerifier service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Verify", Handler: verifyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "studypartner/auth/v1/verifier.proto",
}

// RegisterServer registers srv on s.
func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&ServiceDesc, srv)
}

func verifyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VerifyFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).Verify(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// EncodePrincipal converts p to its wire form.
func EncodePrincipal(p model.Principal) (*structpb.Struct, error) {
	roles := make([]any, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, r)
	}
	return structpb.NewStruct(map[string]any{
		"identityId": p.UserID.String(),
		"email":      p.Email,
		"roles":      roles,
	})
}

// DecodePrincipal parses the wire form produced by EncodePrincipal.
func DecodePrincipal(s *structpb.Struct) (model.Principal, error) {
	fields := s.GetFields()

	id, err := uuid.Parse(fields["identityId"].GetStringValue())
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid identityId: %w", err)
	}

	p := model.Principal{
		UserID: id,
		Email:  fields["email"].GetStringValue(),
		Roles:  []string{},
	}
	for _, v := range fields["roles"].GetListValue().GetValues() {
		p.Roles = append(p.Roles, v.GetStringValue())
	}
	return p, nil
}

// ToStatus converts err to a gRPC status error. Authentication failures
// carry an ErrorInfo whose reason is the upper-cased token reason, e.g.
// TOKEN_EXPIRED.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}

	appErr, ok := apperror.As(err)
	if !ok {
		if _, isStatus := status.FromError(err); isStatus {
			return err
		}
		return status.Error(codes.Internal, "internal server error")
	}

	message := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		message = "internal server error"
	}
	st := status.New(appErr.GRPCCode(), message)

	reason := strings.ToUpper(appErr.Kind.String())
	if appErr.Reason != "" {
		reason = strings.ToUpper(string(appErr.Reason))
	}
	withDetails, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: ErrorDomain,
		Metadata: map[string]string{
			"kind":      appErr.Kind.String(),
			"retryable": fmt.Sprint(appErr.Retryable()),
		},
	})
	if detailErr != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// FromStatus converts a status error produced by ToStatus back into the
// apperror taxonomy.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return apperror.Unavailable("token verifier unreachable", err)
	}

	var reason string
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			reason = strings.ToLower(info.GetReason())
			break
		}
	}

	switch st.Code() {
	case codes.Unauthenticated:
		switch r := apperror.Reason(reason); r {
		case apperror.ReasonTokenMissing, apperror.ReasonTokenMalformed, apperror.ReasonTokenExpired, apperror.ReasonTokenInvalid:
			return apperror.AuthenticationReason(r, st.Message())
		}
		return apperror.Authentication(st.Message())
	case codes.PermissionDenied:
		return apperror.Authorization(st.Message())
	case codes.InvalidArgument:
		return apperror.Validation(st.Message())
	case codes.NotFound:
		return apperror.NotFound(st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return apperror.Unavailable(st.Message(), err)
	default:
		return apperror.Internal(st.Message(), err)
	}
}

// Client verifies bearer tokens against a remote auth service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Verify sends authorizationHeader ("Bearer <token>") and returns the
// verified principal or an apperror with the failure reason.
func (c *Client) Verify(ctx context.Context, authorizationHeader string, opts ...grpc.CallOption) (model.Principal, error) {
	if authorizationHeader != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, AuthorizationKey, authorizationHeader)
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, VerifyFullMethod, new(emptypb.Empty), out, opts...); err != nil {
		return model.Principal{}, FromStatus(err)
	}

	p, err := DecodePrincipal(out)
	if err != nil {
		return model.Principal{}, apperror.Internal("malformed verification response", err)
	}
	return p, nil
}
