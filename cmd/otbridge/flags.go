package main

import (
	"time"

	"github.com/kakao/otbridge/internal/flags"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	defaultSpans           = 10
	defaultConcurrency     = 1
	defaultOperationName   = "emit"
)

var (
	flagShutdownTimeout = flags.ShutdownTimeout()
	flagSpans           = flags.Spans()
	flagConcurrency     = flags.Concurrency()
	flagOperationName   = flags.OperationName()
)
