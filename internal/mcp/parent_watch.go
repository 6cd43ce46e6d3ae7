package mcp

import (
	"context"
	"os"
	"time"

	"tagwalk/internal/logging"
)

// ParentPollInterval is how often WatchParent checks the parent PID.
var ParentPollInterval = 2 * time.Second

// WatchParent monitors for parent process death in a background goroutine.
// When the parent PID changes (the client that spawned the stdio server went
// away), it calls cancelFn to trigger graceful shutdown.
//
// It must NOT read from stdin: the SDK's StdioTransport owns stdin and any
// stolen bytes would corrupt the JSON-RPC stream.
//
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		ticker := time.NewTicker(ParentPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, initiating shutdown", "ppid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
