package actor

import (
	"io"

	"github.com/btcsuite/btclog/v2"
)

// log is the package-level logger used by the actor runtime. Host binaries
// install a concrete backend via UseLogger; until then all log calls are
// swallowed by a handler writing to io.Discard.
var log btclog.Logger = btclog.NewSLogger(btclog.NewDefaultHandler(io.Discard))

// UseLogger installs logger as the actor package's logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
