package main

import "os"

// soundPlayer emits the audible cue for stage-completing transitions. The
// terminal bell is the only instrument available; the cue name still travels
// to telemetry so the distinct events stay distinguishable in the log.
type soundPlayer struct {
	enabled   bool
	telemetry *telemetryLogger
}

func newSoundPlayer(enabled bool, telemetry *telemetryLogger) *soundPlayer {
	return &soundPlayer{enabled: enabled, telemetry: telemetry}
}

func (p *soundPlayer) Play(cue string) {
	if p == nil || !p.enabled {
		return
	}
	_, _ = os.Stdout.WriteString("\a")
	if p.telemetry != nil {
		p.telemetry.Emit(gridEvent{Event: "sound_cue", Value: cue})
	}
}
