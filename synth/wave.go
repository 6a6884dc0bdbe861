package synth

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/jsphweid/solfege/constants"
	"github.com/jsphweid/solfege/util"
)

// samples between checks of the stop function, 10ms at 44.1kHz
const stopCheckInterval = constants.SampleRate / 100

// Envelope is the amplitude at time t (seconds) of a tone lasting d seconds:
// a linear fade in, a linear fade out of the same length, and full volume in
// between. The fade lasts a tenth of the tone, at most 50ms.
func Envelope(t, d float64) float64 {
	fade := util.Min(constants.MaxFade.Seconds(), d*constants.MaxFadeFraction)
	if fade <= 0 {
		return 1
	}
	switch {
	case t < fade:
		return t / fade
	case t > d-fade:
		return math.Max(0, (d-t)/fade)
	default:
		return 1
	}
}

func NumSamples(d time.Duration) int {
	return int(int64(constants.SampleRate) * d.Milliseconds() / 1000)
}

// Samples renders an enveloped sine at freq Hz lasting d. stop is polled
// while rendering; once it reports true generation ends and ok is false.
func Samples(freq float64, d time.Duration, stop func() bool) (samples []int16, ok bool) {
	n := NumSamples(d)
	total := d.Seconds()
	samples = make([]int16, n)
	for i := 0; i < n; i++ {
		if stop != nil && i%stopCheckInterval == 0 && stop() {
			return samples[:i], false
		}
		t := float64(i) / constants.SampleRate
		v := Envelope(t, total) * math.Sin(2*math.Pi*freq*t)
		samples[i] = int16(math.Round(v * constants.Amplitude))
	}
	return samples, true
}

// EncodePCM lays samples out as signed 16-bit little-endian mono PCM.
func EncodePCM(samples []int16) []byte {
	buf := make([]byte, len(samples)*constants.BytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// PCMDuration is how long pcm takes to play at the fixed format.
func PCMDuration(pcm []byte) time.Duration {
	frames := len(pcm) / (constants.BytesPerSample * constants.NumChannels)
	return time.Duration(frames) * time.Second / constants.SampleRate
}
