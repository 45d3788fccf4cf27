// Package media reads intrinsic properties of video files with ffprobe.
package media

import (
	"bytes"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kdimtricp/swingcore/internal/overlay"
)

type Prober struct {
	ffprobePath string
}

func NewProber() (*Prober, error) {
	path, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}
	log.Printf("Found ffprobe at: %s", path)
	return &Prober{ffprobePath: path}, nil
}

// VideoSize returns the display size of the first video stream, with the
// rotation side data applied so portrait recordings report portrait sizes.
func (p *Prober) VideoSize(videoPath string) (*overlay.Size, error) {
	cmd := exec.Command(p.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:stream_side_data=rotation",
		"-of", "default=noprint_wrappers=1",
		videoPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("ffprobe stderr output: %s", stderr.String())
		return nil, fmt.Errorf("failed to probe %s: %w", videoPath, err)
	}

	return ParseProbeOutput(stdout.String())
}

// ParseProbeOutput parses ffprobe key=value output.
func ParseProbeOutput(output string) (*overlay.Size, error) {
	var width, height, rotation float64
	var haveWidth, haveHeight bool

	for _, line := range strings.Split(output, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		switch key {
		case "width":
			width, haveWidth = v, true
		case "height":
			height, haveHeight = v, true
		case "rotation":
			rotation = v
		}
	}

	if !haveWidth || !haveHeight || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("no video dimensions in ffprobe output")
	}

	r := int(rotation) % 180
	if r == 90 || r == -90 {
		width, height = height, width
	}

	return &overlay.Size{Width: width, Height: height}, nil
}
