package core

import "errors"

// ErrHubStopped is returned by queries issued after the hub loop has exited.
var ErrHubStopped = errors.New("hub stopped")
