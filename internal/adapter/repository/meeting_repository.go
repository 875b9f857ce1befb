package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var meetingSortColumns = map[string]string{
	"date":       "date",
	"created_at": "created_at",
	"title":      "title",
}

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&meeting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrMeetingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// UpdateMinutes overwrites the minutes of a meeting
func (r *meetingRepository) UpdateMinutes(ctx context.Context, id uuid.UUID, minutes *entities.MeetingMinutes) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{ID: id}).
		Select("minutes", "updated_at").
		Updates(&entities.Meeting{Minutes: minutes, UpdatedAt: time.Now()})
	return affectedOrNotFound(result)
}

// UpdateTranscript overwrites the transcript of a meeting
func (r *meetingRepository) UpdateTranscript(ctx context.Context, id uuid.UUID, transcript []entities.TranscriptSegment) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{ID: id}).
		Select("transcript", "updated_at").
		Updates(&entities.Meeting{Transcript: transcript, UpdatedAt: time.Now()})
	return affectedOrNotFound(result)
}

// Delete removes a meeting
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id)
	return affectedOrNotFound(result)
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var meetings []*entities.Meeting
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Meeting{})

	// Apply filters
	if search := strings.TrimSpace(filters.Search); search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", search)
		query = query.Where("title ILIKE ? OR participants::text ILIKE ?", searchPattern, searchPattern)
	}
	if filters.From != nil {
		query = query.Where("date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("date <= ?", *filters.To)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply sorting
	sortBy, ok := meetingSortColumns[filters.SortBy]
	if !ok {
		sortBy = "date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	// Apply pagination
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	query = query.Limit(limit)
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&meetings).Error
	return meetings, total, err
}

// Statistics aggregates counts over all meetings
func (r *meetingRepository) Statistics(ctx context.Context) (*repositories.MeetingStatistics, error) {
	var row struct {
		TotalMeetings    int64
		MostRecentDate   *time.Time
		TotalDuration    float64
		WithMinutes      int64
		TotalActionItems int64
	}
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Select(`COUNT(*) AS total_meetings,
			MAX(date) AS most_recent_date,
			COALESCE(SUM(duration_seconds), 0) AS total_duration,
			COUNT(minutes) AS with_minutes,
			COALESCE(SUM(jsonb_array_length(COALESCE(minutes->'action_items', '[]'::jsonb))), 0) AS total_action_items`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &repositories.MeetingStatistics{
		TotalMeetings:    row.TotalMeetings,
		MostRecentDate:   row.MostRecentDate,
		TotalDuration:    row.TotalDuration,
		WithMinutes:      row.WithMinutes,
		TotalActionItems: row.TotalActionItems,
	}, nil
}

// FindAudioOlderThan retrieves meetings still holding audio created before cutoff
func (r *meetingRepository) FindAudioOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("(audio_path IS NOT NULL OR audio_object_key IS NOT NULL) AND created_at < ?", cutoff).
		Order("created_at ASC").
		Find(&meetings).Error
	return meetings, err
}

// ClearAudio drops the audio references of a meeting
func (r *meetingRepository) ClearAudio(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"audio_path":       nil,
			"audio_object_key": nil,
			"updated_at":       time.Now(),
		})
	return affectedOrNotFound(result)
}

func affectedOrNotFound(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}
