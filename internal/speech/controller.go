// Package speech reads text aloud through an on-device engine, one utterance
// at a time.
package speech

import (
	"context"
	"errors"
	"sync"
)

var ErrNotPlaying = errors.New("nothing is playing")

// Utterance is one piece of text being spoken.
type Utterance interface {
	Pause() error
	Resume() error
	Stop() error
	// Done is closed when playback ends for any reason.
	Done() <-chan struct{}
	// Err is the engine's failure once Done is closed. It is nil when
	// playback completed or was stopped.
	Err() error
}

type Engine interface {
	Start(ctx context.Context, text string) (Utterance, error)
}

// Controller owns at most one active utterance. Speaking again stops the
// current utterance before the next starts.
type Controller struct {
	engine Engine

	mu     sync.Mutex
	active Utterance
	paused bool
}

func NewController(engine Engine) *Controller {
	return &Controller{engine: engine}
}

// Speak starts text and returns its utterance.
func (c *Controller) Speak(ctx context.Context, text string) (Utterance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		if err := c.active.Stop(); err != nil {
			return nil, err
		}
		c.active = nil
	}
	u, err := c.engine.Start(ctx, text)
	if err != nil {
		return nil, err
	}
	c.active = u
	c.paused = false
	go c.release(u)
	return u, nil
}

// release forgets u once it finishes, unless it was already replaced.
func (c *Controller) release(u Utterance) {
	<-u.Done()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == u {
		c.active = nil
		c.paused = false
	}
}

func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return ErrNotPlaying
	}
	if c.paused {
		return nil
	}
	if err := c.active.Pause(); err != nil {
		return err
	}
	c.paused = true
	return nil
}

func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return ErrNotPlaying
	}
	if !c.paused {
		return nil
	}
	if err := c.active.Resume(); err != nil {
		return err
	}
	c.paused = false
	return nil
}

func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return ErrNotPlaying
	}
	err := c.active.Stop()
	c.active = nil
	c.paused = false
	return err
}
