package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	dto "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// UploadOptions limits what the upload endpoint accepts
type UploadOptions struct {
	Dir              string
	SupportedFormats []string
	MaxFileSizeMB    int64
}

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	service meetingUsecase.Service
	upload  UploadOptions
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUsecase.Service, upload UploadOptions, logger *zap.Logger) *Meeting {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Meeting{
		service: service,
		upload:  upload,
		logger:  logger,
	}
}

func parseMeetingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("meeting ID must be a valid UUID")
	}
	return id, nil
}

// saveUpload checks and stores the uploaded recording, returning its local path
func (h *Meeting) saveUpload(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	supported := len(h.upload.SupportedFormats) == 0
	for _, f := range h.upload.SupportedFormats {
		if f == ext {
			supported = true
			break
		}
	}
	if !supported {
		return "", errors.ErrUnsupportedAudio(ext)
	}
	if h.upload.MaxFileSizeMB > 0 && fh.Size > h.upload.MaxFileSizeMB*1024*1024 {
		return "", errors.ErrAudioTooLarge(h.upload.MaxFileSizeMB)
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.ErrInvalidArgument("cannot read uploaded audio")
	}
	defer src.Close()

	if err := os.MkdirAll(h.upload.Dir, 0o755); err != nil {
		return "", errors.ErrInternal(fmt.Errorf("create upload dir: %w", err))
	}
	path := filepath.Join(h.upload.Dir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", errors.ErrInternal(fmt.Errorf("create upload file: %w", err))
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", errors.ErrInternal(fmt.Errorf("write upload file: %w", err))
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", errors.ErrInternal(fmt.Errorf("close upload file: %w", err))
	}
	return path, nil
}

// CreateMeeting handles POST /meetings
// @Summary      Process a meeting recording
// @Description  Uploads a recording, transcribes it, attributes speakers and extracts minutes
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio              formData  file    true   "Meeting recording"
// @Param        title              formData  string  true   "Meeting title"
// @Param        date               formData  string  false  "Meeting date (RFC 3339 or YYYY-MM-DD)"
// @Param        participants       formData  string  false  "Comma separated participant names"
// @Param        agenda             formData  string  false  "Agenda, used as extraction context"
// @Param        expected_speakers  formData  int     false  "Expected number of speakers"
// @Param        language           formData  string  false  "Transcription language"
// @Success      200  {object}  meeting.MeetingResponse  "Processed meeting"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Failure      413  {object}  map[string]interface{}  "Audio too large"
// @Failure      415  {object}  map[string]interface{}  "Unsupported audio format"
// @Failure      422  {object}  map[string]interface{}  "Minutes failed structural validation"
// @Failure      502  {object}  map[string]interface{}  "Transcription failed"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req dto.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("date must be RFC 3339 or YYYY-MM-DD"))
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio file is required"))
	}
	path, err := h.saveUpload(fh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var agenda *string
	if a := strings.TrimSpace(req.Agenda); a != "" {
		agenda = &a
	}
	var expected *int
	if req.ExpectedSpeakers > 0 {
		expected = &req.ExpectedSpeakers
	}

	m, err := h.service.Process(c.Request().Context(), meetingUsecase.ProcessInput{
		Title:            req.Title,
		Date:             date,
		Participants:     splitList(req.Participants),
		Agenda:           agenda,
		AudioPath:        path,
		ExpectedSpeakers: expected,
		Language:         req.Language,
	})
	if err != nil {
		os.Remove(path)
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Lists meetings newest first, searching title and participants
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        search      query     string  false  "Search in title and participants"
// @Param        from        query     string  false  "Earliest meeting date"
// @Param        to          query     string  false  "Latest meeting date"
// @Param        page        query     int     false  "Page number"  default(1)
// @Param        page_size   query     int     false  "Page size"    default(20)
// @Param        sort_by     query     string  false  "date, created_at or title"
// @Param        sort_order  query     string  false  "asc or desc"
// @Success      200  {object}  meeting.ListMeetingsResponse  "Meetings"
// @Failure      400  {object}  map[string]interface{}  "Invalid query"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	req := dto.ListMeetingsRequest{Page: 1, PageSize: 20}
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	filters, err := buildFilters(&req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, total, err := h.service.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list meetings", err))
	}

	return HandleSuccess(h.logger, c, &dto.ListMeetingsResponse{
		Meetings:   presenter.ToMeetingListItems(meetings),
		Pagination: common.NewPagination(req.Page, req.PageSize, total),
	})
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Description  Returns the transcript and minutes of a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting"
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Removes the meeting and its audio
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Deleted"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// UpdateMinutes handles PUT /meetings/:id/minutes
// @Summary      Edit meeting minutes
// @Description  Replaces the minutes; action items need an owner and a task
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Meeting ID (UUID)"
// @Param        request  body      meeting.UpdateMinutesRequest  true  "Minutes"
// @Success      200  {object}  meeting.MeetingResponse  "Updated meeting"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      422  {object}  map[string]interface{}  "Minutes failed structural validation"
// @Router       /meetings/{id}/minutes [put]
func (h *Meeting) UpdateMinutes(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateMinutesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.UpdateMinutes(c.Request().Context(), id, presenter.ToMinutes(&req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// RenameSpeakers handles PUT /meetings/:id/speakers
// @Summary      Rename speakers
// @Description  Relabels transcript speakers, e.g. "Speaker 1" to "Alice"
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Meeting ID (UUID)"
// @Param        request  body      meeting.RenameSpeakersRequest  true  "Label mapping"
// @Success      200  {object}  meeting.RenameSpeakersResponse  "Rename result"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/speakers [put]
func (h *Meeting) RenameSpeakers(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.RenameSpeakersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, changed, err := h.service.RenameSpeakers(c.Request().Context(), id, req.Mapping)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &dto.RenameSpeakersResponse{
		Changed: changed,
		Meeting: presenter.ToMeetingResponse(m),
	})
}

// RegenerateMinutes handles POST /meetings/:id/summarize
// @Summary      Regenerate minutes
// @Description  Re-runs minutes extraction over the stored transcript
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting with new minutes"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      409  {object}  map[string]interface{}  "Meeting is being processed"
// @Failure      422  {object}  map[string]interface{}  "Minutes failed structural validation"
// @Router       /meetings/{id}/summarize [post]
func (h *Meeting) RegenerateMinutes(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.Regenerate(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// ExportMeeting handles GET /meetings/:id/export
// @Summary      Export a meeting
// @Description  Downloads the minutes as markdown, xlsx, yaml or json, or publishes them to object storage
// @Tags         Meetings
// @Produce      octet-stream
// @Produce      json
// @Security     BearerAuth
// @Param        id                      path   string  true   "Meeting ID (UUID)"
// @Param        format                  query  string  true   "markdown, xlsx, yaml or json"
// @Param        include_transcript      query  bool    false  "Include transcript"      default(true)
// @Param        include_timestamps      query  bool    false  "Include timestamps"      default(true)
// @Param        include_speaker_labels  query  bool    false  "Include speaker labels"  default(true)
// @Param        publish                 query  bool    false  "Store and return a presigned URL"
// @Success      200  {file}    file  "Exported document"
// @Failure      400  {object}  map[string]interface{}  "Unsupported format"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/export [get]
func (h *Meeting) ExportMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	req := dto.ExportRequest{IncludeTranscript: true, IncludeTimestamps: true, IncludeSpeakerLabels: true}
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.service.Export(c.Request().Context(), id, meetingUsecase.ExportInput{
		Options: export.Options{
			Format:               req.Format,
			IncludeTranscript:    req.IncludeTranscript,
			IncludeTimestamps:    req.IncludeTimestamps,
			IncludeSpeakerLabels: req.IncludeSpeakerLabels,
		},
		Publish: req.Publish,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	doc := res.Document
	if req.Publish {
		return HandleSuccess(h.logger, c, &dto.ExportResponse{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Size:        len(doc.Data),
			ObjectKey:   res.ObjectKey,
			URL:         res.URL,
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}

// Statistics handles GET /stats
// @Summary      Meeting statistics
// @Description  Counts meetings, recorded time and action items
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meeting.StatisticsResponse  "Statistics"
// @Router       /stats [get]
func (h *Meeting) Statistics(c echo.Context) error {
	stats, err := h.service.Statistics(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("statistics", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToStatisticsResponse(stats))
}
