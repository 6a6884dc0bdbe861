package constants

import (
	"os"
	"time"
)

func GetAddr() string {
	addr := os.Getenv("SOLFEGE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetDynamoEndpoint returns "" when the analysis history is disabled.
func GetDynamoEndpoint() string {
	return os.Getenv("SOLFEGE_DYNAMODB_ENDPOINT")
}

func GetDynamoRegion() string {
	region := os.Getenv("SOLFEGE_DYNAMODB_REGION")
	if region != "" {
		return region
	}
	return "us-east-1"
}

func GetMidiPort() string {
	return os.Getenv("SOLFEGE_MIDI_PORT")
}

const DynamoTable = "solfege-analyses"

// playback timing
const (
	NoteDuration        = 500 * time.Millisecond
	InterNotePause      = 200 * time.Millisecond
	InterParagraphPause = 800 * time.Millisecond
	MaxFadeFraction     = 0.1
	MaxFade             = 50 * time.Millisecond
	SampleRate          = 44100
	NumChannels         = 1
	BytesPerSample      = 2
	Amplitude           = 16000
)
