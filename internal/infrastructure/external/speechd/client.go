package speechd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Client talks to a self-hosted speech service exposing /transcribe and /diarize.
// Audio never leaves the local network, which makes it the privacy mode backend.
type Client struct {
	baseURL string
	model   string
	c       *http.Client
	logger  *zap.Logger
}

// NewClient creates a speech service client
func NewClient(cfg *config.SpeechServiceConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		model:   cfg.Model,
		c:       newHTTPClient(cfg, timeout),
		logger:  logger,
	}
}

// newHTTPClient attaches client-credential tokens when a token URL is configured
func newHTTPClient(cfg *config.SpeechServiceConfig, timeout time.Duration) *http.Client {
	if cfg.TokenURL == "" {
		return &http.Client{Timeout: timeout}
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	client := cc.Client(context.Background())
	client.Timeout = timeout
	return client
}

type transSeg struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type transcribeResp struct {
	Segments []transSeg `json:"segments"`
	Language string     `json:"language"`
	Duration float64    `json:"duration"`
}

type diarTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

type diarizeResp struct {
	Turns []diarTurn `json:"turns"`
}

// Transcribe sends the audio to /transcribe. Segment confidence is estimated
// from text density because the service reports none.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string, _ *int) (*entities.Transcription, error) {
	fields := map[string]string{"model": c.model}
	if language != "" {
		fields["language"] = language
	}

	var out transcribeResp
	if err := c.post(ctx, "/transcribe", audioPath, fields, &out); err != nil {
		return nil, err
	}

	segments := make([]entities.TranscriptSegment, 0, len(out.Segments))
	for _, s := range out.Segments {
		seg, err := entities.NewTranscriptSegment(s.Start, s.End, s.Text)
		if err != nil {
			continue
		}
		segments = append(segments, seg.WithConfidence(entities.EstimateConfidence(seg.Text, seg.Duration())))
	}

	duration := out.Duration
	if duration <= 0 {
		duration = entities.LastSegmentEnd(segments)
	}
	c.logger.Info("✅ Local transcription completed",
		zap.String("model", c.model),
		zap.Int("segments", len(segments)),
		zap.String("language", out.Language),
	)
	return &entities.Transcription{
		Segments: segments,
		Language: out.Language,
		Duration: duration,
		Model:    "whisper-" + c.model,
	}, nil
}

// Diarize sends the audio to /diarize
func (c *Client) Diarize(ctx context.Context, audioPath string, expectedSpeakers *int) ([]entities.SpeakerTurn, error) {
	fields := map[string]string{}
	if expectedSpeakers != nil && *expectedSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(*expectedSpeakers)
	}

	var out diarizeResp
	if err := c.post(ctx, "/diarize", audioPath, fields, &out); err != nil {
		return nil, err
	}

	turns := make([]entities.SpeakerTurn, 0, len(out.Turns))
	for _, t := range out.Turns {
		if t.End <= t.Start {
			continue
		}
		turns = append(turns, entities.SpeakerTurn{Start: t.Start, End: t.End, Label: normalizeLabel(t.Speaker)})
	}
	return turns, nil
}

// normalizeLabel turns pyannote-style "SPEAKER_00" into "Speaker 1"
func normalizeLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entities.DefaultSpeaker
	}
	if rest, ok := strings.CutPrefix(strings.ToUpper(raw), "SPEAKER_"); ok {
		if n, err := strconv.Atoi(rest); err == nil {
			return fmt.Sprintf("Speaker %d", n+1)
		}
	}
	return raw
}

// writeForm writes the fields first, then the audio part
func writeForm(w *multipart.Writer, audio io.Reader, filename string, fields map[string]string) error {
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return err
	}
	return w.Close()
}

func (c *Client) post(ctx context.Context, path, audioPath string, fields map[string]string, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("speech service URL not configured")
	}

	fd, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrAudioNotFound, err)
	}

	// Stream the recording; uploads can be hundreds of megabytes
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		defer fd.Close()
		pw.CloseWithError(writeForm(w, fd, filepath.Base(audioPath), fields))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, pr)
	if err != nil {
		pr.Close()
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("speechd %s %s: %s", path, resp.Status, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("speechd %s decode: %w", path, err)
	}
	return nil
}
