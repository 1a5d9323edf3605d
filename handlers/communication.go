package handlers

import (
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

/* announcements */

func CreateAnnouncementHandler(c *gin.Context) {
	var input models.NewAnnouncement
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateAnnouncementHandler", err)
		return
	}
	announcement, err := models.CreateAnnouncement(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateAnnouncementHandler", err)
		return
	}
	respondData(c, announcement)
}

func UpdateAnnouncementHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewAnnouncement
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateAnnouncementHandler", err)
		return
	}
	announcement, err := models.UpdateAnnouncement(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateAnnouncementHandler", err)
		return
	}
	respondData(c, announcement)
}

func PublishAnnouncementHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	announcement, err := models.PublishAnnouncement(c.Request.Context(), id)
	if err != nil {
		respondError(c, "PublishAnnouncementHandler", err)
		return
	}
	respondData(c, announcement)
}

func DeleteAnnouncementHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	announcement, err := models.DeleteAnnouncement(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteAnnouncementHandler", err)
		return
	}
	respondData(c, announcement)
}

func ListAnnouncementsHandler(c *gin.Context) {
	announcements, err := models.ListAnnouncements(c.Request.Context(),
		boolQuery(c, "only_visible"), time.Now())
	if err != nil {
		respondError(c, "ListAnnouncementsHandler", err)
		return
	}
	respondData(c, announcements)
}

/* meetings */

func CreateMeetingHandler(c *gin.Context) {
	var input models.NewMeeting
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateMeetingHandler", err)
		return
	}
	meeting, err := models.CreateMeeting(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateMeetingHandler", err)
		return
	}
	respondData(c, meeting)
}

func UpdateMeetingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewMeeting
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateMeetingHandler", err)
		return
	}
	meeting, err := models.UpdateMeeting(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateMeetingHandler", err)
		return
	}
	respondData(c, meeting)
}

type attachMinutesRequest struct {
	DocumentId int `json:"document_id" binding:"required"`
}

func AttachMeetingMinutesHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input attachMinutesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "AttachMeetingMinutesHandler", err)
		return
	}
	meeting, err := models.AttachMeetingMinutes(c.Request.Context(), id, input.DocumentId)
	if err != nil {
		respondError(c, "AttachMeetingMinutesHandler", err)
		return
	}
	respondData(c, meeting)
}

func DeleteMeetingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	meeting, err := models.DeleteMeeting(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteMeetingHandler", err)
		return
	}
	respondData(c, meeting)
}

func ListMeetingsHandler(c *gin.Context) {
	now := time.Now()
	from := dateQuery(c, "from", now.AddDate(-1, 0, 0))
	to := dateQuery(c, "to", now.AddDate(0, 3, 0))

	meetings, err := models.ListMeetings(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "ListMeetingsHandler", err)
		return
	}
	respondData(c, meetings)
}
