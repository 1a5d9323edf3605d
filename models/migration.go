package models

import (
	"log"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
)

// MigrateTable keeps the schema in sync with the model structs.
// Runs at startup unless SKIP_MIGRATIONS is set.
func MigrateTable() {
	db := config.GetDB()
	err := db.AutoMigrate(
		&Property{},
		&GeneralSetting{},
		&House{},
		&HouseOwner{},
		&Owner{},
		&Vehicle{},
		&Pet{},
		&FamilyMember{},
		&HouseholdStaff{},
		&Employee{},
		&AttendanceRecord{},
		&Provider{},
		&CommonArea{},
		&ReservationPolicy{},
		&Reservation{},
		&Fee{},
		&FeePayment{},
		&Transaction{},
		&Budget{},
		&ReserveFund{},
		&FundMovement{},
		&MaintenanceTask{},
		&MaintenanceSchedule{},
		&IncidentCategory{},
		&Incident{},
		&IncidentUpdate{},
		&Folder{},
		&Document{},
		&DocumentView{},
		&Announcement{},
		&Meeting{},
		&AdminUser{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
