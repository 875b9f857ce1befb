package media

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Prober reads audio durations with ffprobe
type Prober struct {
	binary string
}

// NewProber creates a prober. An empty binary means "ffprobe" from PATH.
func NewProber(binary string) *Prober {
	if binary == "" {
		binary = "ffprobe"
	}
	return &Prober{binary: binary}
}

// Available reports whether the ffprobe binary can be found
func (p *Prober) Available() error {
	if _, err := exec.LookPath(p.binary); err != nil {
		return fmt.Errorf("%s not found. Install ffmpeg to enable duration probing", p.binary)
	}
	return nil
}

// Duration returns the container duration of the audio file in seconds
func (p *Prober) Duration(ctx context.Context, audioPath string) (float64, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return 0, fmt.Errorf("%w: %v", entities.ErrAudioNotFound, err)
	}

	// ffprobe -v error -show_entries format=duration -of default=noprint_wrappers=1:nokey=1 input
	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseDuration(stdout.String())
}

func parseDuration(out string) (float64, error) {
	out = strings.TrimSpace(out)
	if out == "" || out == "N/A" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}
	// Some containers print one line per stream; the first is the format duration
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = strings.TrimSpace(out[:i])
	}
	d, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration %q: %w", out, err)
	}
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("ffprobe duration %q is not positive", out)
	}
	return d, nil
}
