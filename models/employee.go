package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/shopspring/decimal"
)

// Employee is a staff member employed by the property administration.
type Employee struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PropertyId string          `gorm:"index;not null" json:"property_id"`
	FirstName  string          `gorm:"size:100;not null" json:"first_name" binding:"required"`
	LastName   string          `gorm:"size:100;not null" json:"last_name" binding:"required"`
	DocumentId string          `gorm:"size:20;not null" json:"document_id" binding:"required"`
	Role       EmployeeRole    `gorm:"type:enum('vigilante','aseo','jardineria','administracion','mantenimiento','otro');not null" json:"role" binding:"required"`
	Phone      string          `gorm:"size:20" json:"phone"`
	Email      string          `gorm:"size:100" json:"email"`
	Salary     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"salary"`
	HiredAt    *time.Time      `json:"hired_at"`
	EndedAt    *time.Time      `json:"ended_at"`
	IsActive   *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEmployee struct {
	FirstName  string          `json:"first_name" binding:"required"`
	LastName   string          `json:"last_name" binding:"required"`
	DocumentId string          `json:"document_id" binding:"required"`
	Role       EmployeeRole    `json:"role" binding:"required"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Salary     decimal.Decimal `json:"salary"`
	HiredAt    *time.Time      `json:"hired_at"`
}

type EmployeesEdge Edge[Employee]

func (obj Employee) GetId() int {
	return obj.ID
}

func (obj Employee) GetPropertyId() string {
	return obj.PropertyId
}

type EmployeesConnection struct {
	PageInfo *PageInfo        `json:"pageInfo"`
	Edges    []*EmployeesEdge `json:"edges"`
}

func (obj Employee) GetCursor() string {
	return obj.LastName + obj.FirstName
}

func (obj Employee) FullName() string {
	return obj.FirstName + " " + obj.LastName
}

func (obj Employee) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Employee](obj.ID)
}

func (obj Employee) RemoveAllRedis() error {
	return utils.RemoveRedisList[Employee](obj.PropertyId)
}

func (input *NewEmployee) validate(ctx context.Context, propertyId string, id int) error {
	if !input.Role.IsValid() {
		return errors.New("invalid employee role")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email address")
	}
	if input.Salary.IsNegative() {
		return errors.New("salary must not be negative")
	}

	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[Employee](ctx, propertyId,
			"document_id = ?", input.DocumentId)
	} else {
		count, err = utils.ResourceCountWhere[Employee](ctx, propertyId,
			"document_id = ? AND NOT id = ?", input.DocumentId, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate document id")
	}

	return nil
}

func CreateEmployee(ctx context.Context, input *NewEmployee) (*Employee, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := input.validate(ctx, propertyId, 0); err != nil {
		return nil, err
	}

	employee := Employee{
		PropertyId: propertyId,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		DocumentId: input.DocumentId,
		Role:       input.Role,
		Phone:      input.Phone,
		Email:      input.Email,
		Salary:     input.Salary,
		HiredAt:    input.HiredAt,
		IsActive:   utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&employee).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(employee); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &employee, nil
}

func UpdateEmployee(ctx context.Context, id int, input *NewEmployee) (*Employee, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	before, err := utils.FetchModel[Employee](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, propertyId, id); err != nil {
		return nil, err
	}

	update := Employee{
		ID:         id,
		PropertyId: propertyId,
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"FirstName":  input.FirstName,
		"LastName":   input.LastName,
		"DocumentId": input.DocumentId,
		"Role":       input.Role,
		"Phone":      input.Phone,
		"Email":      input.Email,
		"Salary":     input.Salary,
		"HiredAt":    input.HiredAt,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(*before); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Employee](ctx, propertyId, id)
}

// TerminateEmployee marks the end of employment and deactivates the record.
func TerminateEmployee(ctx context.Context, id int, endedAt time.Time) (*Employee, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	employee, err := utils.FetchModel[Employee](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if employee.HiredAt != nil && endedAt.Before(*employee.HiredAt) {
		return nil, errors.New("end date is before hire date")
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(employee).Updates(map[string]interface{}{
		"EndedAt":  &endedAt,
		"IsActive": false,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := RemoveRedisBoth(*employee); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return employee, nil
}

func GetEmployee(ctx context.Context, id int) (*Employee, error) {
	return GetResource[Employee](ctx, id)
}

func ListAllEmployees(ctx context.Context) ([]*Employee, error) {
	return ListAllResource[Employee, Employee](ctx, "last_name", "first_name")
}

func ToggleActiveEmployee(ctx context.Context, id int, isActive bool) (*Employee, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return ToggleActiveModel[Employee](ctx, propertyId, id, isActive)
}

func PaginateEmployee(ctx context.Context, limit *int, after *string, role *EmployeeRole) (*EmployeesConnection, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if role != nil && *role != "" {
		dbCtx.Where("role = ?", *role)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Employee](dbCtx, *limit, after, "last_name", ">")
	if err != nil {
		return nil, err
	}
	var connection EmployeesConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		employeesEdge := EmployeesEdge(edge)
		connection.Edges = append(connection.Edges, &employeesEdge)
	}

	return &connection, err
}

/* attendance */

// AttendanceRecord is one work day per employee. One row per employee+date.
type AttendanceRecord struct {
	ID         int        `gorm:"primary_key" json:"id"`
	PropertyId string     `gorm:"index;not null" json:"property_id"`
	EmployeeId int        `gorm:"index;not null;uniqueIndex:idx_attendance_day" json:"employee_id" binding:"required"`
	WorkDate   time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_day" json:"work_date" binding:"required"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	Notes      string     `gorm:"size:255" json:"notes"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj AttendanceRecord) GetPropertyId() string {
	return obj.PropertyId
}

// WorkedHours returns hours between check-in and check-out. A check-out
// earlier than the check-in means the shift crossed midnight.
func (obj AttendanceRecord) WorkedHours() decimal.Decimal {
	if obj.CheckIn == nil || obj.CheckOut == nil {
		return decimal.Zero
	}
	d := obj.CheckOut.Sub(*obj.CheckIn)
	if d < 0 {
		d += 24 * time.Hour
	}
	return decimal.NewFromFloat(d.Hours()).Round(2)
}

// CheckInEmployee opens the attendance row for the day, creating it if needed.
func CheckInEmployee(ctx context.Context, employeeId int, at time.Time) (*AttendanceRecord, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if err := utils.ValidateResourceId[Employee](ctx, propertyId, employeeId); err != nil {
		return nil, errors.New("employee not found")
	}

	workDate := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())

	count, err := utils.ResourceCountWhere[AttendanceRecord](ctx, propertyId,
		"employee_id = ? AND work_date = ?", employeeId, workDate)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("employee already checked in today")
	}

	record := AttendanceRecord{
		PropertyId: propertyId,
		EmployeeId: employeeId,
		WorkDate:   workDate,
		CheckIn:    &at,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CheckOutEmployee stamps the check-out on today's open row.
func CheckOutEmployee(ctx context.Context, employeeId int, at time.Time) (*AttendanceRecord, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}

	db := config.GetDB()
	var record AttendanceRecord
	err := db.WithContext(ctx).
		Where("property_id = ? AND employee_id = ? AND check_out IS NULL", propertyId, employeeId).
		Order("work_date DESC").
		First(&record).Error
	if err != nil {
		return nil, errors.New("no open attendance record")
	}

	if err := db.WithContext(ctx).Model(&record).UpdateColumn("CheckOut", &at).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListAttendance returns records for an employee in [from, to].
func ListAttendance(ctx context.Context, employeeId int, from, to time.Time) ([]*AttendanceRecord, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	var results []*AttendanceRecord
	err := db.WithContext(ctx).
		Where("property_id = ? AND employee_id = ? AND work_date BETWEEN ? AND ?",
			propertyId, employeeId, from, to).
		Order("work_date").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// TotalWorkedHours sums worked hours for an employee in a period.
func TotalWorkedHours(ctx context.Context, employeeId int, from, to time.Time) (decimal.Decimal, error) {
	records, err := ListAttendance(ctx, employeeId, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.WorkedHours())
	}
	return total, nil
}
