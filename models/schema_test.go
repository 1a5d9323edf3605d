package models

import (
	"reflect"
	"strings"
	"testing"
)

// enumTagParts pulls the member set and the declared default out of a
// gorm column tag like "type:enum('a','b');default:'a'".
func enumTagParts(tag string) (map[string]bool, string, bool) {
	start := strings.Index(tag, "type:enum(")
	if start < 0 {
		return nil, "", false
	}
	rest := tag[start+len("type:enum("):]
	end := strings.Index(rest, ")")
	if end < 0 {
		return nil, "", false
	}
	members := make(map[string]bool)
	for _, member := range strings.Split(rest[:end], ",") {
		members[strings.Trim(member, "'")] = true
	}

	def := ""
	if idx := strings.Index(tag, "default:'"); idx >= 0 {
		tail := tag[idx+len("default:'"):]
		if quote := strings.Index(tail, "'"); quote >= 0 {
			def = tail[:quote]
		}
	}
	return members, def, true
}

// MySQL rejects DDL whose default is not an enum member, which would
// kill AutoMigrate at startup. Every declared default must belong to
// its column's member set.
func TestEnumColumnDefaultsAreMembers(t *testing.T) {
	types := []interface{}{
		Property{}, GeneralSetting{}, Announcement{}, Meeting{},
		House{}, HouseOwner{}, Owner{}, Employee{}, AttendanceRecord{},
		Provider{}, CommonArea{}, Reservation{}, ReservationPolicy{},
		Fee{}, FeePayment{}, Transaction{}, Budget{},
		FundMovement{}, MaintenanceTask{}, MaintenanceSchedule{},
		IncidentCategory{}, Incident{}, IncidentUpdate{},
		Folder{}, Document{}, DocumentView{}, AdminUser{},
	}
	checked := 0
	for _, model := range types {
		modelType := reflect.TypeOf(model)
		for i := 0; i < modelType.NumField(); i++ {
			field := modelType.Field(i)
			members, def, ok := enumTagParts(field.Tag.Get("gorm"))
			if !ok {
				continue
			}
			checked++
			if def == "" {
				continue
			}
			if !members[def] {
				t.Fatalf("%s.%s: default %q is not an enum member %v",
					modelType.Name(), field.Name, def, members)
			}
		}
	}
	if checked == 0 {
		t.Fatal("no enum columns found; parser or models changed")
	}
}

func TestMaintenanceTaskCarriesIncidentLink(t *testing.T) {
	field, ok := reflect.TypeOf(MaintenanceTask{}).FieldByName("IncidentId")
	if !ok {
		t.Fatal("MaintenanceTask has no IncidentId field")
	}
	if field.Type != reflect.TypeOf((*int)(nil)) {
		t.Fatalf("IncidentId expected *int, got %s", field.Type)
	}
	if !strings.Contains(field.Tag.Get("gorm"), "index") {
		t.Fatalf("IncidentId column is not indexed: %q", field.Tag.Get("gorm"))
	}
}
