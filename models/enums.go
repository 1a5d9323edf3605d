package models

// enum values are stored in MySQL ENUM columns; keep them in sync with MigrateTable.

type OccupancyState string

const (
	OccupancyStateOccupied OccupancyState = "ocupada"
	OccupancyStateVacant   OccupancyState = "desocupada"
	OccupancyStateForSale  OccupancyState = "en_venta"
	OccupancyStateForRent  OccupancyState = "en_arriendo"
)

func (e OccupancyState) IsValid() bool {
	switch e {
	case OccupancyStateOccupied, OccupancyStateVacant, OccupancyStateForSale, OccupancyStateForRent:
		return true
	}
	return false
}

type OwnerRelation string

const (
	OwnerRelationOwner  OwnerRelation = "propietario"
	OwnerRelationTenant OwnerRelation = "arrendatario"
)

func (e OwnerRelation) IsValid() bool {
	return e == OwnerRelationOwner || e == OwnerRelationTenant
}

type EmployeeRole string

const (
	EmployeeRoleGuard       EmployeeRole = "vigilante"
	EmployeeRoleCleaning    EmployeeRole = "aseo"
	EmployeeRoleGardening   EmployeeRole = "jardineria"
	EmployeeRoleAdmin       EmployeeRole = "administracion"
	EmployeeRoleMaintenance EmployeeRole = "mantenimiento"
	EmployeeRoleOther       EmployeeRole = "otro"
)

func (e EmployeeRole) IsValid() bool {
	switch e {
	case EmployeeRoleGuard, EmployeeRoleCleaning, EmployeeRoleGardening,
		EmployeeRoleAdmin, EmployeeRoleMaintenance, EmployeeRoleOther:
		return true
	}
	return false
}

type ProviderState string

const (
	ProviderStateActive    ProviderState = "activo"
	ProviderStateInactive  ProviderState = "inactivo"
	ProviderStateSuspended ProviderState = "suspendido"
)

func (e ProviderState) IsValid() bool {
	switch e {
	case ProviderStateActive, ProviderStateInactive, ProviderStateSuspended:
		return true
	}
	return false
}

type ReservationState string

const (
	ReservationStatePending   ReservationState = "pendiente"
	ReservationStateConfirmed ReservationState = "confirmada"
	ReservationStateCancelled ReservationState = "cancelada"
	ReservationStateCompleted ReservationState = "completada"
	ReservationStateNoShow    ReservationState = "no_asistio"
)

func (e ReservationState) IsValid() bool {
	switch e {
	case ReservationStatePending, ReservationStateConfirmed, ReservationStateCancelled,
		ReservationStateCompleted, ReservationStateNoShow:
		return true
	}
	return false
}

type ReservationPaymentState string

const (
	ReservationPaymentPending ReservationPaymentState = "pendiente"
	ReservationPaymentPaid    ReservationPaymentState = "pagado"
	ReservationPaymentExempt  ReservationPaymentState = "exento"
)

type FeeState string

const (
	FeeStateActive FeeState = "activa"
	FeeStateClosed FeeState = "cerrada"
)

type FeePaymentState string

const (
	FeePaymentStateRegistered FeePaymentState = "registrado"
	FeePaymentStateConfirmed  FeePaymentState = "confirmado"
	FeePaymentStateRejected   FeePaymentState = "rechazado"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "efectivo"
	PaymentMethodTransfer PaymentMethod = "transferencia"
	PaymentMethodCheque   PaymentMethod = "cheque"
	PaymentMethodCard     PaymentMethod = "tarjeta"
	PaymentMethodOther    PaymentMethod = "otro"
)

func (e PaymentMethod) IsValid() bool {
	switch e {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCheque, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "ingreso"
	TransactionTypeExpense TransactionType = "gasto"
)

func (e TransactionType) IsValid() bool {
	return e == TransactionTypeIncome || e == TransactionTypeExpense
}

type TransactionCategory string

const (
	// income categories
	CategoryAdminFee         TransactionCategory = "cuota_administracion"
	CategoryAreaReservation  TransactionCategory = "reserva_area"
	CategoryFine             TransactionCategory = "multa"
	CategoryFundContribution TransactionCategory = "aporte_fondo"
	CategoryOtherIncome      TransactionCategory = "otro_ingreso"

	// expense categories
	CategoryMaintenance TransactionCategory = "mantenimiento"
	CategoryUtilities   TransactionCategory = "servicios_publicos"
	CategorySecurity    TransactionCategory = "vigilancia"
	CategoryCleaning    TransactionCategory = "aseo"
	CategoryGardening   TransactionCategory = "jardineria"
	CategoryPayroll     TransactionCategory = "nomina"
	CategoryFundUse     TransactionCategory = "uso_fondo"
	CategoryOtherOther  TransactionCategory = "otro_gasto"
)

var incomeCategories = map[TransactionCategory]bool{
	CategoryAdminFee:         true,
	CategoryAreaReservation:  true,
	CategoryFine:             true,
	CategoryFundContribution: true,
	CategoryOtherIncome:      true,
}

var expenseCategories = map[TransactionCategory]bool{
	CategoryMaintenance: true,
	CategoryUtilities:   true,
	CategorySecurity:    true,
	CategoryCleaning:    true,
	CategoryGardening:   true,
	CategoryPayroll:     true,
	CategoryFundUse:     true,
	CategoryOtherOther:  true,
}

func (c TransactionCategory) IsValid() bool {
	return incomeCategories[c] || expenseCategories[c]
}

// MatchesType reports whether the category belongs to the given transaction type.
func (c TransactionCategory) MatchesType(t TransactionType) bool {
	if t == TransactionTypeIncome {
		return incomeCategories[c]
	}
	return expenseCategories[c]
}

type MaintenanceType string

const (
	MaintenanceTypePreventive MaintenanceType = "preventivo"
	MaintenanceTypeCorrective MaintenanceType = "correctivo"
)

func (e MaintenanceType) IsValid() bool {
	return e == MaintenanceTypePreventive || e == MaintenanceTypeCorrective
}

type MaintenanceState string

const (
	MaintenanceStateScheduled  MaintenanceState = "programado"
	MaintenanceStateInProgress MaintenanceState = "en_proceso"
	MaintenanceStateFinished   MaintenanceState = "finalizado"
	MaintenanceStateCancelled  MaintenanceState = "cancelado"
)

type ScheduleFrequency string

const (
	FrequencyDaily      ScheduleFrequency = "diaria"
	FrequencyWeekly     ScheduleFrequency = "semanal"
	FrequencyBiweekly   ScheduleFrequency = "quincenal"
	FrequencyMonthly    ScheduleFrequency = "mensual"
	FrequencyBimonthly  ScheduleFrequency = "bimestral"
	FrequencyQuarterly  ScheduleFrequency = "trimestral"
	FrequencyHalfYearly ScheduleFrequency = "semestral"
	FrequencyYearly     ScheduleFrequency = "anual"
)

func (e ScheduleFrequency) IsValid() bool {
	switch e {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyBimonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly:
		return true
	}
	return false
}

type IncidentPriority string

const (
	IncidentPriorityLow    IncidentPriority = "baja"
	IncidentPriorityMedium IncidentPriority = "media"
	IncidentPriorityHigh   IncidentPriority = "alta"
	IncidentPriorityUrgent IncidentPriority = "urgente"
)

func (e IncidentPriority) IsValid() bool {
	switch e {
	case IncidentPriorityLow, IncidentPriorityMedium, IncidentPriorityHigh, IncidentPriorityUrgent:
		return true
	}
	return false
}

// resolution time limits in days per priority
var incidentLimitDays = map[IncidentPriority]int{
	IncidentPriorityLow:    14,
	IncidentPriorityMedium: 7,
	IncidentPriorityHigh:   3,
	IncidentPriorityUrgent: 1,
}

func (e IncidentPriority) LimitDays() int {
	return incidentLimitDays[e]
}

type IncidentState string

const (
	IncidentStateReported   IncidentState = "reportada"
	IncidentStateInProgress IncidentState = "en_proceso"
	IncidentStateResolved   IncidentState = "resuelta"
	IncidentStateCancelled  IncidentState = "cancelada"
)

func (e IncidentState) IsValid() bool {
	switch e {
	case IncidentStateReported, IncidentStateInProgress, IncidentStateResolved, IncidentStateCancelled:
		return true
	}
	return false
}

// closing states stamp ClosedAt; reopening clears it
func (e IncidentState) IsClosing() bool {
	return e == IncidentStateResolved || e == IncidentStateCancelled
}

type DocumentType string

const (
	DocumentTypeMinutes    DocumentType = "acta"
	DocumentTypeRegulation DocumentType = "reglamento"
	DocumentTypeCircular   DocumentType = "circular"
	DocumentTypeContract   DocumentType = "contrato"
	DocumentTypeReport     DocumentType = "informe"
	DocumentTypeOther      DocumentType = "otro"
)

func (e DocumentType) IsValid() bool {
	switch e {
	case DocumentTypeMinutes, DocumentTypeRegulation, DocumentTypeCircular,
		DocumentTypeContract, DocumentTypeReport, DocumentTypeOther:
		return true
	}
	return false
}

type DocumentVisibility string

const (
	DocumentVisibilityPublic  DocumentVisibility = "publica"
	DocumentVisibilityPrivate DocumentVisibility = "privada"
)

type AnnouncementAudience string

const (
	AudienceEveryone  AnnouncementAudience = "todos"
	AudienceOwners    AnnouncementAudience = "propietarios"
	AudienceTenants   AnnouncementAudience = "arrendatarios"
	AudienceEmployees AnnouncementAudience = "empleados"
)

type MeetingType string

const (
	MeetingTypeOrdinary      MeetingType = "ordinaria"
	MeetingTypeExtraordinary MeetingType = "extraordinaria"
)

type SettingValueType string

const (
	SettingTypeString  SettingValueType = "string"
	SettingTypeInt     SettingValueType = "int"
	SettingTypeDecimal SettingValueType = "decimal"
	SettingTypeBool    SettingValueType = "bool"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "A"
	UserRoleManager UserRole = "M"
	UserRoleStaff   UserRole = "S"
)

func (e UserRole) IsValid() bool {
	return e == UserRoleAdmin || e == UserRoleManager || e == UserRoleStaff
}

// house blocks run A through D
var validBlocks = map[string]bool{"A": true, "B": true, "C": true, "D": true}

func IsValidBlock(block string) bool {
	return validBlocks[block]
}
