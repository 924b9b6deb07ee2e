// Package gateway converts an in-memory PDF document into extracted text and a
// rendered page image. It is a pure function from bytes to a result record:
// nothing here touches the filesystem or keeps state between calls.
package gateway

import (
	"log/slog"
	"os"
)

// Logger is global since we will need it everywhere. The default writes to
// stderr so stdout stays free for the JSON payload; main replaces it with the
// shared application logger.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
