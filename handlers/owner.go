package handlers

import (
	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateOwnerHandler(c *gin.Context) {
	var input models.NewOwner
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateOwnerHandler", err)
		return
	}
	owner, err := models.CreateOwner(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateOwnerHandler", err)
		return
	}
	respondData(c, owner)
}

func UpdateOwnerHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewOwner
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateOwnerHandler", err)
		return
	}
	owner, err := models.UpdateOwner(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateOwnerHandler", err)
		return
	}
	respondData(c, owner)
}

func DeleteOwnerHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	owner, err := models.DeleteOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteOwnerHandler", err)
		return
	}
	respondData(c, owner)
}

func GetOwnerHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	owner, err := models.GetOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetOwnerHandler", err)
		return
	}
	respondData(c, owner)
}

func ListOwnersHandler(c *gin.Context) {
	owners, err := models.ListAllOwners(c.Request.Context())
	if err != nil {
		respondError(c, "ListOwnersHandler", err)
		return
	}
	respondData(c, owners)
}

func PaginateOwnersHandler(c *gin.Context) {
	connection, err := models.PaginateOwner(c.Request.Context(),
		limitQuery(c), afterQuery(c), stringQuery(c, "keyword"))
	if err != nil {
		respondError(c, "PaginateOwnersHandler", err)
		return
	}
	respondData(c, connection)
}

func ToggleOwnerHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input toggleActiveRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "ToggleOwnerHandler", err)
		return
	}
	owner, err := models.ToggleActiveOwner(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "ToggleOwnerHandler", err)
		return
	}
	respondData(c, owner)
}

/* satellites */

func CreateVehicleHandler(c *gin.Context) {
	var input models.NewVehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateVehicleHandler", err)
		return
	}
	vehicle, err := models.CreateVehicle(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateVehicleHandler", err)
		return
	}
	respondData(c, vehicle)
}

func DeleteVehicleHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	vehicle, err := models.DeleteVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteVehicleHandler", err)
		return
	}
	respondData(c, vehicle)
}

func CreatePetHandler(c *gin.Context) {
	var input models.NewPet
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreatePetHandler", err)
		return
	}
	pet, err := models.CreatePet(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreatePetHandler", err)
		return
	}
	respondData(c, pet)
}

func DeletePetHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pet, err := models.DeletePet(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeletePetHandler", err)
		return
	}
	respondData(c, pet)
}

func CreateFamilyMemberHandler(c *gin.Context) {
	var input models.NewFamilyMember
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateFamilyMemberHandler", err)
		return
	}
	member, err := models.CreateFamilyMember(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateFamilyMemberHandler", err)
		return
	}
	respondData(c, member)
}

func DeleteFamilyMemberHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	member, err := models.DeleteFamilyMember(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteFamilyMemberHandler", err)
		return
	}
	respondData(c, member)
}

func CreateHouseholdStaffHandler(c *gin.Context) {
	var input models.NewHouseholdStaff
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateHouseholdStaffHandler", err)
		return
	}
	staff, err := models.CreateHouseholdStaff(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateHouseholdStaffHandler", err)
		return
	}
	respondData(c, staff)
}

func DeleteHouseholdStaffHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	staff, err := models.DeleteHouseholdStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteHouseholdStaffHandler", err)
		return
	}
	respondData(c, staff)
}

func ListOwnerHouseholdStaffHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	staff, err := models.ListOwnerHouseholdStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListOwnerHouseholdStaffHandler", err)
		return
	}
	respondData(c, staff)
}
