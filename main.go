// Command pdfgateway is a single-shot filter: it reads a base64-encoded PDF
// from stdin, extracts the per-page text and renders the first page to PNG,
// and writes exactly one JSON result object to stdout. Failures are reported
// inside the JSON body, never via the exit code.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/scandocs/pdfgateway/config"
	"github.com/scandocs/pdfgateway/gateway"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// injectGlobals injects all of our globals into their packages
func injectGlobals(logger *slog.Logger) {
	Logger = logger
	config.Logger = logger
	gateway.Logger = logger
}

func main() {
	injectGlobals(config.SetupLogger())

	result := run(os.Stdin)

	// Exactly one JSON object on stdout, whatever happened above.
	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		Logger.Error("Unable to write result JSON", "error", err)
	}
}

// run decodes the base64 payload and hands the raw bytes to the gateway.
// Input failures produce the same failure record shape as processing
// failures.
func run(stdin io.Reader) gateway.ProcessResult {
	input, err := io.ReadAll(stdin)
	if err != nil {
		Logger.Error("Unable to read stdin", "error", err)
		return gateway.FailureResult(fmt.Sprintf("reading stdin: %v", err))
	}

	encoded := strings.TrimSpace(string(input))
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		Logger.Error("Input is not valid base64", "error", err)
		return gateway.FailureResult(fmt.Sprintf("decoding base64 input: %v", err))
	}

	Logger.Info("Decoded PDF from stdin", "base64Length", len(encoded), "bytes", len(data))

	return gateway.Process(data)
}
