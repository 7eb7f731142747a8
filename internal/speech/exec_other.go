//go:build !unix

package speech

import "os"

// Pausing a child process has no portable equivalent here.
var (
	pauseSignal  os.Signal
	resumeSignal os.Signal
)
