package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
)

const DefaultCommand = "espeak"

var errFinished = os.ErrProcessDone

// ExecEngine speaks through a local text-to-speech command such as espeak or
// say. The text is passed as the final argument.
type ExecEngine struct {
	name string
	args []string
}

// NewExecEngine splits command on whitespace into a program and its leading
// arguments.
func NewExecEngine(command string) (*ExecEngine, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{DefaultCommand}
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("speech: %s not found: %w", fields[0], err)
	}
	return &ExecEngine{name: path, args: fields[1:]}, nil
}

func (e *ExecEngine) Start(ctx context.Context, text string) (Utterance, error) {
	args := append(append([]string{}, e.args...), text)
	cmd := exec.CommandContext(ctx, e.name, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("speech: start: %w", err)
	}
	u := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		u.err = cmd.Wait()
		close(u.done)
	}()
	return u, nil
}

type process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error

	stopOnce sync.Once
	stopped  atomic.Bool
}

func (p *process) Done() <-chan struct{} { return p.done }

func (p *process) Err() error {
	select {
	case <-p.done:
	default:
		return nil
	}
	if p.stopped.Load() {
		return nil
	}
	return p.err
}

func (p *process) Pause() error  { return p.signal(pauseSignal) }
func (p *process) Resume() error { return p.signal(resumeSignal) }

func (p *process) Stop() error {
	var err error
	p.stopOnce.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}
		p.stopped.Store(true)
		// A paused process must be continued before it can exit.
		_ = p.signal(resumeSignal)
		err = p.cmd.Process.Kill()
		<-p.done
	})
	if errors.Is(err, errFinished) {
		return nil
	}
	return err
}

func (p *process) signal(sig os.Signal) error {
	if sig == nil {
		return errors.ErrUnsupported
	}
	select {
	case <-p.done:
		return ErrNotPlaying
	default:
	}
	err := p.cmd.Process.Signal(sig)
	if errors.Is(err, errFinished) {
		return ErrNotPlaying
	}
	return err
}
