package main

import (
	"github.com/urfave/cli/v2"

	"github.com/kakao/otbridge/internal/buildinfo"
	"github.com/kakao/otbridge/internal/flags"
)

const appName = "otbridge"

func newApp() *cli.App {
	return &cli.App{
		Name:                      appName,
		Usage:                     "OpenTracing tracer bridged onto OpenTelemetry",
		Version:                   buildinfo.ReadVersionInfo().Version,
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			newCheckCommand(),
			newEmitCommand(),
			newVersionCommand(),
		},
	}
}

func tracerFlags() []cli.Flag {
	var ret []cli.Flag
	ret = append(ret, flags.TracerFlags()...)
	ret = append(ret, flags.PropertiesFlags()...)
	ret = append(ret, flags.LoggerFlags()...)
	return ret
}

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "resolve the tracer configuration and print it",
		Flags:  tracerFlags(),
		Action: check,
	}
}

func newEmitCommand() *cli.Command {
	cmdFlags := tracerFlags()
	cmdFlags = append(cmdFlags, flags.GRPCClientFlags()...)
	cmdFlags = append(cmdFlags, flags.TelemetryFlags()...)
	cmdFlags = append(cmdFlags,
		flagOperationName.StringFlag(false, defaultOperationName),
		flagSpans.IntFlag(false, defaultSpans),
		flagConcurrency.IntFlag(false, defaultConcurrency),
		flagShutdownTimeout.DurationFlag(false, defaultShutdownTimeout),
	)
	return &cli.Command{
		Name:   "emit",
		Usage:  "emit a parent span and its children through the tracer",
		Flags:  cmdFlags,
		Action: emit,
	}
}

func newVersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "print the version",
		Action: printVersion,
	}
}
