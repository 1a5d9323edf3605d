package handlers

import (
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateReservationHandler(c *gin.Context) {
	var input models.NewReservation
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateReservationHandler", err)
		return
	}
	reservation, err := models.CreateReservation(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateReservationHandler", err)
		return
	}
	respondData(c, reservation)
}

func ConfirmReservationHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := models.ConfirmReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ConfirmReservationHandler", err)
		return
	}
	respondData(c, reservation)
}

type cancelReservationRequest struct {
	Reason string `json:"reason"`
}

func CancelReservationHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input cancelReservationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CancelReservationHandler", err)
		return
	}
	reservation, err := models.CancelReservation(c.Request.Context(), id, input.Reason)
	if err != nil {
		respondError(c, "CancelReservationHandler", err)
		return
	}
	respondData(c, reservation)
}

func CompleteReservationHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := models.CompleteReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, "CompleteReservationHandler", err)
		return
	}
	respondData(c, reservation)
}

func MarkReservationNoShowHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := models.MarkReservationNoShow(c.Request.Context(), id)
	if err != nil {
		respondError(c, "MarkReservationNoShowHandler", err)
		return
	}
	respondData(c, reservation)
}

type reservationPaymentRequest struct {
	Method    models.PaymentMethod `json:"method" binding:"required"`
	Reference string               `json:"reference"`
}

func RegisterReservationPaymentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input reservationPaymentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "RegisterReservationPaymentHandler", err)
		return
	}
	reservation, err := models.RegisterReservationPayment(c.Request.Context(), id, input.Method, input.Reference)
	if err != nil {
		respondError(c, "RegisterReservationPaymentHandler", err)
		return
	}
	respondData(c, reservation)
}

func GetReservationHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := models.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetReservationHandler", err)
		return
	}
	respondData(c, reservation)
}

func ListAreaReservationsHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	now := time.Now()
	from := dateQuery(c, "from", now.AddDate(0, 0, -7))
	to := dateQuery(c, "to", now.AddDate(0, 1, 0))

	reservations, err := models.ListAreaReservations(c.Request.Context(), id, from, to)
	if err != nil {
		respondError(c, "ListAreaReservationsHandler", err)
		return
	}
	respondData(c, reservations)
}

func PaginateReservationsHandler(c *gin.Context) {
	var state *models.ReservationState
	if raw := stringQuery(c, "state"); raw != nil {
		value := models.ReservationState(*raw)
		state = &value
	}
	connection, err := models.PaginateReservation(c.Request.Context(),
		limitQuery(c), afterQuery(c),
		intQuery(c, "area_id"), intQuery(c, "house_id"), state)
	if err != nil {
		respondError(c, "PaginateReservationsHandler", err)
		return
	}
	respondData(c, connection)
}

/* policy */

func GetReservationPolicyHandler(c *gin.Context) {
	policy, err := models.GetReservationPolicy(c.Request.Context())
	if err != nil {
		respondError(c, "GetReservationPolicyHandler", err)
		return
	}
	respondData(c, policy)
}

func SetReservationPolicyHandler(c *gin.Context) {
	var input models.NewReservationPolicy
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "SetReservationPolicyHandler", err)
		return
	}
	policy, err := models.SetReservationPolicy(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "SetReservationPolicyHandler", err)
		return
	}
	respondData(c, policy)
}
