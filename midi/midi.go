// Package midi plays notes on a MIDI output port instead of synthesizing
// them.
package midi

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsphweid/solfege/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// MiddleC is the key number of DO in the reference octave.
const MiddleC = 60

const (
	DefaultVelocity = 100
	allNotesOff     = 123
)

var semitones = map[string]uint8{
	"DO":  0,
	"RE":  2,
	"MI":  4,
	"FA":  5,
	"SOL": 7,
	"LA":  9,
	"SI":  11,
}

// NoteNumber maps a note to its MIDI key, clamped to 127.
func NoteNumber(n model.Note) uint8 {
	key := MiddleC + int(semitones[n.Name]) + 12*n.Octave
	if n.Sharp {
		key++
	}
	if key > 127 {
		return 127
	}
	return uint8(key)
}

// Player implements playback.Player on a MIDI output port.
type Player struct {
	Channel  uint8
	Velocity uint8

	mu      sync.Mutex
	send    func(msg midi.Message) error
	stopped atomic.Bool
}

// NewPlayer sends to send, typically the result of midi.SendTo.
func NewPlayer(send func(msg midi.Message) error) *Player {
	return &Player{Velocity: DefaultVelocity, send: send}
}

func findPort(port string) (drivers.Out, error) {
	if num, err := strconv.Atoi(port); err == nil {
		return midi.OutPort(num)
	}
	return midi.FindOutPort(port)
}

// OpenPlayer opens an output port by number or name. A driver must be
// registered by the caller, e.g. by importing rtmididrv.
func OpenPlayer(port string) (*Player, error) {
	out, err := findPort(port)
	if err != nil {
		return nil, errors.Wrapf(err, "could not find midi port %q", port)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, errors.Wrapf(err, "could not send to midi port %v", out)
	}
	return NewPlayer(send), nil
}

func (p *Player) write(msg midi.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.send(msg)
}

// Play holds the key for d or until ctx is done. StopAll silences it at once
// with All Notes Off.
func (p *Player) Play(ctx context.Context, n model.Note, d time.Duration) error {
	if ctx.Err() != nil || p.stopped.Load() {
		return nil
	}
	key := NoteNumber(n)
	if err := p.write(midi.NoteOn(p.Channel, key, p.Velocity)); err != nil {
		return errors.Wrapf(err, "could not send note on for %v", n)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	return errors.Wrapf(p.write(midi.NoteOff(p.Channel, key)), "could not send note off for %v", n)
}

// StopAll silences the channel and turns Play into a no-op until Reset.
func (p *Player) StopAll() {
	p.stopped.Store(true)
	if err := p.write(midi.ControlChange(p.Channel, allNotesOff, 0)); err != nil {
		log.Printf("Could not send all notes off: %v", err)
	}
}

func (p *Player) Reset() {
	p.stopped.Store(false)
}

// Close releases the driver.
func Close() {
	midi.CloseDriver()
}
