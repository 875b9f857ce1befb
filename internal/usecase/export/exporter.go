package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Supported formats
const (
	FormatMarkdown = "markdown"
	FormatXLSX     = "xlsx"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
)

// ErrUnsupportedFormat is returned for formats outside the supported set
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Options controls what goes into an exported document
type Options struct {
	Format               string `json:"format" validate:"required,oneof=markdown xlsx yaml json"`
	IncludeTranscript    bool   `json:"include_transcript"`
	IncludeTimestamps    bool   `json:"include_timestamps"`
	IncludeSpeakerLabels bool   `json:"include_speaker_labels"`
}

// DefaultOptions includes everything, like a fresh export dialog
func DefaultOptions(format string) Options {
	return Options{
		Format:               format,
		IncludeTranscript:    true,
		IncludeTimestamps:    true,
		IncludeSpeakerLabels: true,
	}
}

// Document is a rendered export ready to be written or served
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

type renderer struct {
	ext         string
	contentType string
	render      func(e *Exporter, m *entities.Meeting, opts Options) ([]byte, error)
}

var renderers = map[string]renderer{
	FormatMarkdown: {ext: "md", contentType: "text/markdown; charset=utf-8", render: (*Exporter).markdown},
	FormatXLSX:     {ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", render: (*Exporter).xlsx},
	FormatYAML:     {ext: "yaml", contentType: "application/yaml", render: (*Exporter).yaml},
	FormatJSON:     {ext: "json", contentType: "application/json", render: (*Exporter).json},
}

// Exporter renders meetings into documents
type Exporter struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewExporter creates an exporter using the wall clock
func NewExporter() *Exporter {
	return &Exporter{validate: validator.New(), now: time.Now}
}

// Export renders the meeting in the requested format
func (e *Exporter) Export(meeting *entities.Meeting, opts Options) (*Document, error) {
	if meeting == nil {
		return nil, entities.ErrMeetingNotFound
	}
	opts.Format = strings.ToLower(strings.TrimSpace(opts.Format))
	if opts.Format == "md" {
		opts.Format = FormatMarkdown
	}
	if err := e.validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}

	r := renderers[opts.Format]
	data, err := r.render(e, meeting, opts)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return &Document{
		Filename:    Filename(meeting, r.ext, e.now()),
		ContentType: r.contentType,
		Data:        data,
	}, nil
}
