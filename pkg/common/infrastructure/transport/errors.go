package transport

import (
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorCodes maps domain sentinel errors to gRPC codes on the server side.
type ErrorCodes []ErrorCode

type ErrorCode struct {
	Err  error
	Code codes.Code
}

func (m ErrorCodes) ToStatus(err error) error {
	if err == nil {
		return nil
	}
	for _, ec := range m {
		if errors.Is(err, ec.Err) {
			return status.Error(ec.Code, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

// FromStatus turns a gRPC error back into a sentinel registered for its code,
// keeping the remote message. When several sentinels share a code the one the
// message ends with wins, otherwise the first. Unknown codes are returned
// unchanged.
func (m ErrorCodes) FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var cause error
	for _, ec := range m {
		if ec.Code != st.Code() {
			continue
		}
		if strings.HasSuffix(st.Message(), ec.Err.Error()) {
			cause = ec.Err
			break
		}
		if cause == nil {
			cause = ec.Err
		}
	}
	if cause == nil {
		return err
	}
	return &remoteError{st: st, cause: cause}
}

// remoteError keeps the original status so callers further out can still
// read the gRPC code.
type remoteError struct {
	st    *status.Status
	cause error
}

func (e *remoteError) Error() string              { return e.st.Message() }
func (e *remoteError) Unwrap() error              { return e.cause }
func (e *remoteError) GRPCStatus() *status.Status { return e.st }
