package flags

import (
	"fmt"
	"math"

	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"

	"github.com/kakao/otbridge/pkg/util/units"
)

const (
	CategoryGRPC = "gRPC:"
)

// byteSizeAction validates a byte size flag within the optional inclusive
// bounds.
func byteSizeAction(flagName string, minMax ...int64) func(*cli.Context, string) error {
	return func(_ *cli.Context, value string) error {
		if _, err := units.FromByteSizeString(value, minMax...); err != nil {
			return fmt.Errorf("invalid value \"%s\" for flag --%s", value, flagName)
		}
		return nil
	}
}

var (
	// GRPCClientReadBufferSize is a flag to set the gRPC client's read buffer
	// size for a single read syscall.
	//
	// See:
	//   - https://pkg.go.dev/google.golang.org/grpc#WithReadBufferSize
	GRPCClientReadBufferSize = &cli.StringFlag{
		Name:     "grpc-client-read-buffer-size",
		Category: CategoryGRPC,
		EnvVars:  []string{"GRPC_CLIENT_READ_BUFFER_SIZE"},
		Usage:    "Set the gRPC client's read buffer size for a single read syscall. If not set, the default value of 32KiB defined by gRPC will be used.",
		Action:   byteSizeAction("grpc-client-read-buffer-size"),
	}
	// GRPCClientWriteBufferSize is a flag to set the gRPC client's write
	// buffer size for a single write syscall.
	//
	// See:
	//   - https://pkg.go.dev/google.golang.org/grpc#WithWriteBufferSize
	GRPCClientWriteBufferSize = &cli.StringFlag{
		Name:     "grpc-client-write-buffer-size",
		Category: CategoryGRPC,
		EnvVars:  []string{"GRPC_CLIENT_WRITE_BUFFER_SIZE"},
		Usage:    "Set the gRPC client's write buffer size for a single write syscall. If not set, the default value of 32KiB defined by gRPC will be used.",
		Action:   byteSizeAction("grpc-client-write-buffer-size"),
	}
	// GRPCClientInitialConnWindowSize is a flag to set the gRPC client's initial window size for a connection.
	//
	// See:
	//   - https://pkg.go.dev/google.golang.org/grpc#WithInitialConnWindowSize
	GRPCClientInitialConnWindowSize = &cli.StringFlag{
		Name:     "grpc-client-initial-conn-window-size",
		Category: CategoryGRPC,
		EnvVars:  []string{"GRPC_CLIENT_INITIAL_CONN_WINDOW_SIZE"},
		Usage:    "Set the gRPC client's initial window size for a connection. If not set, the default value of 64KiB defined by gRPC will be used.",
		Action:   byteSizeAction("grpc-client-initial-conn-window-size", 0, math.MaxInt32),
	}
	// GRPCClientInitialWindowSize is a flag to set the gRPC client's initial window size for a stream.
	//
	// See:
	//   - https://pkg.go.dev/google.golang.org/grpc#WithInitialWindowSize
	GRPCClientInitialWindowSize = &cli.StringFlag{
		Name:     "grpc-client-initial-window-size",
		Category: CategoryGRPC,
		EnvVars:  []string{"GRPC_CLIENT_INITIAL_WINDOW_SIZE"},
		Usage:    "Set the gRPC client's initial window size for a stream. If not set, the default value of 64KiB defined by gRPC will be used.",
		Action:   byteSizeAction("grpc-client-initial-window-size", 0, math.MaxInt32),
	}
	// GRPCClientMaxSendMsgSize is a flag to set the maximum message size the
	// client can send, which bounds a batch of exported spans.
	//
	// See:
	//   - https://pkg.go.dev/google.golang.org/grpc#MaxCallSendMsgSize
	GRPCClientMaxSendMsgSize = &cli.StringFlag{
		Name:     "grpc-client-max-send-msg-size",
		Category: CategoryGRPC,
		EnvVars:  []string{"GRPC_CLIENT_MAX_SEND_MSG_SIZE"},
		Usage:    "Set the maximum message size in bytes that the gRPC client can send. If not set, no limit is applied by the client.",
		Action:   byteSizeAction("grpc-client-max-send-msg-size", 1, math.MaxInt32),
	}
)

// ParseGRPCDialOptionFlags returns the dial options of the flags that are
// set. The defaults of gRPC apply to the others.
func ParseGRPCDialOptionFlags(c *cli.Context) (opts []grpc.DialOption, err error) {
	if c.IsSet(GRPCClientReadBufferSize.Name) {
		readBufferSize, err := units.FromByteSizeString(c.String(GRPCClientReadBufferSize.Name))
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithReadBufferSize(int(readBufferSize)))
	}
	if c.IsSet(GRPCClientWriteBufferSize.Name) {
		writeBufferSize, err := units.FromByteSizeString(c.String(GRPCClientWriteBufferSize.Name))
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithWriteBufferSize(int(writeBufferSize)))
	}
	if c.IsSet(GRPCClientInitialConnWindowSize.Name) {
		initialConnWindowSize, err := units.FromByteSizeString(c.String(GRPCClientInitialConnWindowSize.Name), 0, math.MaxInt32)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithInitialConnWindowSize(int32(initialConnWindowSize)))
	}
	if c.IsSet(GRPCClientInitialWindowSize.Name) {
		initialWindowSize, err := units.FromByteSizeString(c.String(GRPCClientInitialWindowSize.Name), 0, math.MaxInt32)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithInitialWindowSize(int32(initialWindowSize)))
	}
	if c.IsSet(GRPCClientMaxSendMsgSize.Name) {
		maxSendMsgSize, err := units.FromByteSizeString(c.String(GRPCClientMaxSendMsgSize.Name), 1, math.MaxInt32)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.MaxCallSendMsgSize(int(maxSendMsgSize))))
	}
	return opts, nil
}

// GRPCClientFlags returns all flags configuring the gRPC client.
func GRPCClientFlags() []cli.Flag {
	return []cli.Flag{
		GRPCClientReadBufferSize,
		GRPCClientWriteBufferSize,
		GRPCClientInitialConnWindowSize,
		GRPCClientInitialWindowSize,
		GRPCClientMaxSendMsgSize,
	}
}
