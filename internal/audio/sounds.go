package audio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/rotisserie/eris"

	"pingpong/internal/game"
)

const (
	sampleRate      = beep.SampleRate(44100)
	blipDuration    = 80 * time.Millisecond
	resampleQuality = 4
)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// cueFiles are looked up in the assets directory.
var cueFiles = map[game.Cue]string{
	game.CuePaddleHit:  "paddle_hit.wav",
	game.CueWallBounce: "wall_bounce.wav",
	game.CueScore:      "score.wav",
}

// cueTones are used when a cue has no wav file.
var cueTones = map[game.Cue]float64{
	game.CueWallBounce: 440,
	game.CuePaddleHit:  660,
	game.CueScore:      880,
}

// loadSounds builds one buffer per cue, preferring files in dir.
// The second return lists cues that fell back to a generated tone.
func loadSounds(dir string) (map[game.Cue]*beep.Buffer, []game.Cue, error) {
	sounds := make(map[game.Cue]*beep.Buffer, len(cueFiles))
	var synthesized []game.Cue

	for cue, name := range cueFiles {
		path := filepath.Join(dir, name)

		var (
			buf *beep.Buffer
			err error
		)
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			buf, err = tone(cueTones[cue], blipDuration)
			synthesized = append(synthesized, cue)
		} else {
			buf, err = loadWav(path)
		}
		if err != nil {
			return nil, nil, err
		}
		sounds[cue] = buf
	}
	return sounds, synthesized, nil
}

func loadWav(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open %s", path)
	}

	streamer, srcFormat, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, eris.Wrapf(err, "failed to decode %s", path)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if srcFormat.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, srcFormat.SampleRate, sampleRate, s)
	}

	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}

func tone(freq float64, d time.Duration) (*beep.Buffer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to generate %v Hz tone", freq)
	}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(sampleRate.N(d), sine))
	return buf, nil
}
