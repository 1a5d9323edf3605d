package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
)

// Announcement is a notice published to residents or staff. Publishing
// and expiry control visibility; delivery is out of scope.
type Announcement struct {
	ID          int                  `gorm:"primary_key" json:"id"`
	PropertyId  string               `gorm:"index;not null" json:"property_id"`
	Title       string               `gorm:"size:255;not null" json:"title" binding:"required"`
	Body        string               `gorm:"type:text;not null" json:"body" binding:"required"`
	Audience    AnnouncementAudience `gorm:"type:enum('todos','propietarios','arrendatarios','empleados');default:'todos'" json:"audience"`
	PublishedAt *time.Time           `gorm:"index" json:"published_at"`
	ExpiresAt   *time.Time           `json:"expires_at"`
	Author      string               `gorm:"size:100" json:"author"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj Announcement) GetPropertyId() string {
	return obj.PropertyId
}

// IsVisible reports whether the announcement is published and unexpired.
func (obj Announcement) IsVisible(now time.Time) bool {
	if obj.PublishedAt == nil || now.Before(*obj.PublishedAt) {
		return false
	}
	return obj.ExpiresAt == nil || now.Before(*obj.ExpiresAt)
}

type NewAnnouncement struct {
	Title     string               `json:"title" binding:"required"`
	Body      string               `json:"body" binding:"required"`
	Audience  AnnouncementAudience `json:"audience"`
	ExpiresAt *time.Time           `json:"expires_at"`
}

func CreateAnnouncement(ctx context.Context, input *NewAnnouncement) (*Announcement, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	audience := input.Audience
	if audience == "" {
		audience = AudienceEveryone
	}

	author, _ := utils.GetUsernameFromContext(ctx)
	announcement := Announcement{
		PropertyId: propertyId,
		Title:      input.Title,
		Body:       input.Body,
		Audience:   audience,
		ExpiresAt:  input.ExpiresAt,
		Author:     author,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&announcement).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// UpdateAnnouncement edits a draft. Published announcements only accept
// an expiry change.
func UpdateAnnouncement(ctx context.Context, id int, input *NewAnnouncement) (*Announcement, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	announcement, err := utils.FetchModel[Announcement](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if announcement.PublishedAt != nil {
		err = db.WithContext(ctx).Model(announcement).
			UpdateColumn("ExpiresAt", input.ExpiresAt).Error
		if err != nil {
			return nil, err
		}
		announcement.ExpiresAt = input.ExpiresAt
		return announcement, nil
	}

	audience := input.Audience
	if audience == "" {
		audience = AudienceEveryone
	}
	err = db.WithContext(ctx).Model(announcement).Updates(map[string]interface{}{
		"Title":     input.Title,
		"Body":      input.Body,
		"Audience":  audience,
		"ExpiresAt": input.ExpiresAt,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[Announcement](ctx, propertyId, id)
}

// PublishAnnouncement stamps the publication time. Idempotent refusal
// when already published.
func PublishAnnouncement(ctx context.Context, id int) (*Announcement, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	announcement, err := utils.FetchModel[Announcement](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if announcement.PublishedAt != nil {
		return nil, errors.New("announcement is already published")
	}

	now := time.Now()
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(announcement).UpdateColumn("PublishedAt", &now).Error; err != nil {
		return nil, err
	}
	announcement.PublishedAt = &now
	return announcement, nil
}

func DeleteAnnouncement(ctx context.Context, id int) (*Announcement, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	announcement, err := utils.FetchModel[Announcement](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(announcement).Error; err != nil {
		return nil, err
	}
	return announcement, nil
}

// ListAnnouncements returns announcements, optionally only the ones
// currently visible.
func ListAnnouncements(ctx context.Context, onlyVisible bool, now time.Time) ([]*Announcement, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)
	if onlyVisible {
		dbCtx.Where("published_at IS NOT NULL AND published_at <= ?", now).
			Where("expires_at IS NULL OR expires_at > ?", now)
	}
	var results []*Announcement
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Meeting is an owners' assembly (ordinaria or extraordinaria).
type Meeting struct {
	ID          int         `gorm:"primary_key" json:"id"`
	PropertyId  string      `gorm:"index;not null" json:"property_id"`
	Type        MeetingType `gorm:"type:enum('ordinaria','extraordinaria');default:'ordinaria'" json:"type"`
	Subject     string      `gorm:"size:255;not null" json:"subject" binding:"required"`
	Agenda      string      `gorm:"type:text" json:"agenda"`
	Location    string      `gorm:"size:255" json:"location"`
	ScheduledAt time.Time   `gorm:"index;not null" json:"scheduled_at" binding:"required"`
	MinutesDoc  *int        `gorm:"index" json:"minutes_doc"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj Meeting) GetPropertyId() string {
	return obj.PropertyId
}

type NewMeeting struct {
	Type        MeetingType `json:"type"`
	Subject     string      `json:"subject" binding:"required"`
	Agenda      string      `json:"agenda"`
	Location    string      `json:"location"`
	ScheduledAt time.Time   `json:"scheduled_at" binding:"required"`
}

func CreateMeeting(ctx context.Context, input *NewMeeting) (*Meeting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	meetingType := input.Type
	if meetingType == "" {
		meetingType = MeetingTypeOrdinary
	}

	meeting := Meeting{
		PropertyId:  propertyId,
		Type:        meetingType,
		Subject:     input.Subject,
		Agenda:      input.Agenda,
		Location:    input.Location,
		ScheduledAt: input.ScheduledAt,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&meeting).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

func UpdateMeeting(ctx context.Context, id int, input *NewMeeting) (*Meeting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	meeting, err := utils.FetchModel[Meeting](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(meeting).Updates(map[string]interface{}{
		"Type":        input.Type,
		"Subject":     input.Subject,
		"Agenda":      input.Agenda,
		"Location":    input.Location,
		"ScheduledAt": input.ScheduledAt,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[Meeting](ctx, propertyId, id)
}

// AttachMeetingMinutes links the acta document to the meeting.
func AttachMeetingMinutes(ctx context.Context, id int, documentId int) (*Meeting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	meeting, err := utils.FetchModel[Meeting](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceId[Document](ctx, propertyId, documentId); err != nil {
		return nil, errors.New("document not found")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(meeting).UpdateColumn("MinutesDoc", documentId).Error; err != nil {
		return nil, err
	}
	meeting.MinutesDoc = &documentId
	return meeting, nil
}

func DeleteMeeting(ctx context.Context, id int) (*Meeting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	meeting, err := utils.FetchModel[Meeting](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

func ListMeetings(ctx context.Context, from, to time.Time) ([]*Meeting, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*Meeting
	err := db.WithContext(ctx).
		Where("property_id = ? AND scheduled_at BETWEEN ? AND ?", propertyId, from, to).
		Order("scheduled_at").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
