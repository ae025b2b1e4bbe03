// Package flags defines the command-line flags shared by the commands and
// parses them into options of the packages they configure.
package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

type FlagDesc struct {
	Name        string
	Aliases     []string
	Usage       string
	Envs        []string
	DefaultText string
}

func (fd *FlagDesc) DurationFlag(required bool, defaultValue time.Duration) *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:        fd.Name,
		Aliases:     fd.Aliases,
		Usage:       fd.Usage,
		EnvVars:     fd.Envs,
		Required:    required,
		Value:       defaultValue,
		DefaultText: fd.DefaultText,
	}
}

func (fd *FlagDesc) IntFlag(required bool, defaultValue int) *cli.IntFlag {
	return &cli.IntFlag{
		Name:        fd.Name,
		Aliases:     fd.Aliases,
		Usage:       fd.Usage,
		EnvVars:     fd.Envs,
		Required:    required,
		Value:       defaultValue,
		DefaultText: fd.DefaultText,
	}
}

func (fd *FlagDesc) StringFlag(required bool, defaultValue string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        fd.Name,
		Aliases:     fd.Aliases,
		Usage:       fd.Usage,
		EnvVars:     fd.Envs,
		Required:    required,
		Value:       defaultValue,
		DefaultText: fd.DefaultText,
	}
}

func ShutdownTimeout() *FlagDesc {
	return &FlagDesc{
		Name:  "shutdown-timeout",
		Envs:  []string{"SHUTDOWN_TIMEOUT"},
		Usage: "Timeout for flushing and closing the tracer.",
	}
}

func Spans() *FlagDesc {
	return &FlagDesc{
		Name:    "spans",
		Aliases: []string{"n"},
		Usage:   "Number of child spans to emit.",
	}
}

func Concurrency() *FlagDesc {
	return &FlagDesc{
		Name:    "concurrency",
		Aliases: []string{"c"},
		Usage:   "Number of goroutines emitting child spans.",
	}
}

func OperationName() *FlagDesc {
	return &FlagDesc{
		Name:    "operation-name",
		Aliases: []string{"operation", "op"},
		Usage:   "Operation name of the parent span.",
	}
}
