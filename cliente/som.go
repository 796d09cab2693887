// som.go - Collision chime
package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeFreq       = 880
	chimeLength     = 50 * time.Millisecond
)

// Chime plays a short tone each time a target is hit. The zero value is
// silent.
type Chime struct {
	enabled bool
	log     *zap.Logger
}

// NewChime opens the speaker. On failure the game carries on without sound.
func NewChime(log *zap.Logger) *Chime {
	c := &Chime{log: log}
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		log.Warn("audio init failed, continuing without sound", zap.Error(err))
		return c
	}
	c.enabled = true
	return c
}

// Hit is shaped to be a game.Options.OnCollision hook.
func (c *Chime) Hit(score int) {
	if c == nil || !c.enabled {
		return
	}
	sine, err := generators.SineTone(chimeSampleRate, chimeFreq)
	if err != nil {
		c.log.Warn("chime", zap.Error(err))
		return
	}
	speaker.Play(beep.Take(chimeSampleRate.N(chimeLength), sine))
}

func (c *Chime) Close() {
	if c != nil && c.enabled {
		speaker.Close()
	}
}
