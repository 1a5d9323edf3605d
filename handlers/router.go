package handlers

import (
	"bitbucket.org/mmdatafocus/altavista_backend/middlewares"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public login route, the authenticated API and
// the admin-only sub-group onto the router.
func RegisterRoutes(r *gin.Engine) {
	r.POST("/api/login", LoginHandler)

	api := r.Group("/api", middlewares.SessionMiddleware())

	api.POST("/logout", LogoutHandler)
	api.POST("/change-password", ChangePasswordHandler)

	admin := api.Group("", middlewares.RequireAdmin())
	admin.POST("/properties", CreatePropertyHandler)
	admin.POST("/users", CreateAdminUserHandler)
	admin.GET("/users", ListAdminUsersHandler)
	admin.PUT("/users/:id/toggle", ToggleAdminUserHandler)
	admin.POST("/users/:id/service-token", IssueServiceTokenHandler)
	admin.PUT("/properties/:id/toggle", TogglePropertyHandler)

	api.PUT("/properties/:id", UpdatePropertyHandler)
	api.GET("/properties/:id", GetPropertyHandler)
	api.GET("/properties", ListPropertiesHandler)
	api.PUT("/settings", SetSettingHandler)
	api.GET("/settings/:key", GetSettingHandler)
	api.GET("/settings", ListSettingsHandler)

	api.POST("/houses", CreateHouseHandler)
	api.PUT("/houses/:id", UpdateHouseHandler)
	api.DELETE("/houses/:id", DeleteHouseHandler)
	api.GET("/houses/:id", GetHouseHandler)
	api.GET("/houses", ListHousesHandler)
	api.GET("/houses/page", PaginateHousesHandler)
	api.PUT("/houses/:id/toggle", ToggleHouseHandler)
	api.GET("/houses/:id/pending-fees", HousePendingFeesHandler)
	api.POST("/house-owners", AssignHouseOwnerHandler)
	api.PUT("/house-owners/:id/release", ReleaseHouseOwnerHandler)
	api.GET("/houses/:id/owners", ListHouseOwnersHandler)
	api.GET("/houses/:id/current-owner", CurrentHouseOwnerHandler)
	api.GET("/houses/:id/residents", ListHouseResidentsHandler)

	api.POST("/owners", CreateOwnerHandler)
	api.PUT("/owners/:id", UpdateOwnerHandler)
	api.DELETE("/owners/:id", DeleteOwnerHandler)
	api.GET("/owners/:id", GetOwnerHandler)
	api.GET("/owners", ListOwnersHandler)
	api.GET("/owners/page", PaginateOwnersHandler)
	api.PUT("/owners/:id/toggle", ToggleOwnerHandler)
	api.POST("/vehicles", CreateVehicleHandler)
	api.DELETE("/vehicles/:id", DeleteVehicleHandler)
	api.POST("/pets", CreatePetHandler)
	api.DELETE("/pets/:id", DeletePetHandler)
	api.POST("/family-members", CreateFamilyMemberHandler)
	api.DELETE("/family-members/:id", DeleteFamilyMemberHandler)
	api.POST("/household-staff", CreateHouseholdStaffHandler)
	api.DELETE("/household-staff/:id", DeleteHouseholdStaffHandler)
	api.GET("/owners/:id/household-staff", ListOwnerHouseholdStaffHandler)

	api.POST("/employees", CreateEmployeeHandler)
	api.PUT("/employees/:id", UpdateEmployeeHandler)
	api.PUT("/employees/:id/terminate", TerminateEmployeeHandler)
	api.GET("/employees/:id", GetEmployeeHandler)
	api.GET("/employees", ListEmployeesHandler)
	api.GET("/employees/page", PaginateEmployeesHandler)
	api.PUT("/employees/:id/toggle", ToggleEmployeeHandler)
	api.POST("/employees/:id/check-in", CheckInHandler)
	api.POST("/employees/:id/check-out", CheckOutHandler)
	api.GET("/employees/:id/attendance", ListAttendanceHandler)

	api.POST("/providers", CreateProviderHandler)
	api.PUT("/providers/:id", UpdateProviderHandler)
	api.DELETE("/providers/:id", DeleteProviderHandler)
	api.GET("/providers/:id", GetProviderHandler)
	api.GET("/providers", ListProvidersHandler)
	api.GET("/providers/page", PaginateProvidersHandler)
	api.PUT("/providers/:id/toggle-state", ToggleProviderStateHandler)

	api.POST("/areas", CreateCommonAreaHandler)
	api.PUT("/areas/:id", UpdateCommonAreaHandler)
	api.DELETE("/areas/:id", DeleteCommonAreaHandler)
	api.GET("/areas/:id", GetCommonAreaHandler)
	api.GET("/areas", ListCommonAreasHandler)
	api.GET("/areas/page", PaginateCommonAreasHandler)
	api.PUT("/areas/:id/toggle", ToggleCommonAreaHandler)
	api.GET("/areas/:id/availability", AreaAvailabilityHandler)
	api.GET("/areas/:id/reservations", ListAreaReservationsHandler)

	api.GET("/reservation-policy", GetReservationPolicyHandler)
	api.PUT("/reservation-policy", SetReservationPolicyHandler)
	api.POST("/reservations", CreateReservationHandler)
	api.PUT("/reservations/:id/confirm", ConfirmReservationHandler)
	api.PUT("/reservations/:id/cancel", CancelReservationHandler)
	api.PUT("/reservations/:id/complete", CompleteReservationHandler)
	api.PUT("/reservations/:id/no-show", MarkReservationNoShowHandler)
	api.POST("/reservations/:id/payment", RegisterReservationPaymentHandler)
	api.GET("/reservations/:id", GetReservationHandler)
	api.GET("/reservations/page", PaginateReservationsHandler)

	api.POST("/fees", CreateFeeHandler)
	api.PUT("/fees/:id", UpdateFeeHandler)
	api.PUT("/fees/:id/close", CloseFeeHandler)
	api.GET("/fees/:id", GetFeeHandler)
	api.GET("/fees/by-period", GetFeeByPeriodHandler)
	api.GET("/fees", ListFeesHandler)
	api.POST("/fees/generate-next", GenerateNextMonthFeeHandler)
	api.GET("/fees/delinquents", ListDelinquentHousesHandler)
	api.GET("/fees/:id/payments", ListFeePaymentsHandler)
	api.GET("/fees/:id/collection", FeeCollectionSummaryHandler)

	api.POST("/payments", RegisterFeePaymentHandler)
	api.PUT("/payments/:id/confirm", ConfirmFeePaymentHandler)
	api.PUT("/payments/:id/reject", RejectFeePaymentHandler)
	api.GET("/payments/:id", GetFeePaymentHandler)
	api.GET("/payments/page", PaginateFeePaymentsHandler)

	api.POST("/transactions", CreateTransactionHandler)
	api.PUT("/transactions/:id/void", VoidTransactionHandler)
	api.GET("/transactions/:id", GetTransactionHandler)
	api.GET("/transactions/balance", LedgerBalanceHandler)
	api.GET("/transactions/page", PaginateTransactionsHandler)

	api.POST("/budgets", CreateBudgetHandler)
	api.PUT("/budgets/:id", UpdateBudgetHandler)
	api.DELETE("/budgets/:id", DeleteBudgetHandler)
	api.GET("/budgets", ListBudgetsHandler)
	api.GET("/budgets/execution", BudgetExecutionHandler)

	api.GET("/reserve-fund", GetReserveFundHandler)
	api.PUT("/reserve-fund/goal", SetReserveFundGoalHandler)
	api.POST("/reserve-fund/contributions", RegisterFundContributionHandler)
	api.POST("/reserve-fund/uses", RegisterFundUseHandler)
	api.GET("/reserve-fund/movements", ListFundMovementsHandler)

	api.POST("/maintenance/tasks", CreateMaintenanceTaskHandler)
	api.PUT("/maintenance/tasks/:id", UpdateMaintenanceTaskHandler)
	api.PUT("/maintenance/tasks/:id/start", StartMaintenanceTaskHandler)
	api.PUT("/maintenance/tasks/:id/finish", FinishMaintenanceTaskHandler)
	api.PUT("/maintenance/tasks/:id/cancel", CancelMaintenanceTaskHandler)
	api.GET("/maintenance/tasks/:id", GetMaintenanceTaskHandler)
	api.GET("/maintenance/tasks/overdue", ListOverdueMaintenanceTasksHandler)
	api.GET("/maintenance/tasks/page", PaginateMaintenanceTasksHandler)
	api.POST("/maintenance/schedules", CreateMaintenanceScheduleHandler)
	api.PUT("/maintenance/schedules/:id", UpdateMaintenanceScheduleHandler)
	api.DELETE("/maintenance/schedules/:id", DeleteMaintenanceScheduleHandler)
	api.PUT("/maintenance/schedules/:id/toggle", ToggleMaintenanceScheduleHandler)
	api.GET("/maintenance/schedules", ListMaintenanceSchedulesHandler)
	api.POST("/maintenance/schedules/generate-due", GenerateDueScheduledTasksHandler)

	api.POST("/incident-categories", CreateIncidentCategoryHandler)
	api.DELETE("/incident-categories/:id", DeleteIncidentCategoryHandler)
	api.GET("/incident-categories", ListIncidentCategoriesHandler)
	api.POST("/incidents", CreateIncidentHandler)
	api.PUT("/incidents/:id/transition", TransitionIncidentHandler)
	api.POST("/incidents/:id/updates", AddIncidentUpdateHandler)
	api.GET("/incidents/:id/updates", ListIncidentUpdatesHandler)
	api.POST("/incidents/:id/assign-maintenance", AssignIncidentToMaintenanceHandler)
	api.GET("/incidents/:id", GetIncidentHandler)
	api.GET("/incidents/overdue", ListOverdueIncidentsHandler)
	api.GET("/incidents/page", PaginateIncidentsHandler)

	api.POST("/folders", CreateFolderHandler)
	api.PUT("/folders/:id/move", MoveFolderHandler)
	api.GET("/folders/:id/path", FolderPathHandler)
	api.DELETE("/folders/:id", DeleteFolderHandler)
	api.GET("/folders", ListFoldersHandler)
	api.POST("/documents", CreateDocumentHandler)
	api.PUT("/documents/:id", UpdateDocumentHandler)
	api.DELETE("/documents/:id", DeleteDocumentHandler)
	api.POST("/documents/:id/view", RecordDocumentViewHandler)
	api.GET("/documents/:id/views", DocumentViewStatsHandler)
	api.GET("/documents", ListDocumentsHandler)
	api.GET("/documents/page", PaginateDocumentsHandler)

	api.POST("/announcements", CreateAnnouncementHandler)
	api.PUT("/announcements/:id", UpdateAnnouncementHandler)
	api.PUT("/announcements/:id/publish", PublishAnnouncementHandler)
	api.DELETE("/announcements/:id", DeleteAnnouncementHandler)
	api.GET("/announcements", ListAnnouncementsHandler)
	api.POST("/meetings", CreateMeetingHandler)
	api.PUT("/meetings/:id", UpdateMeetingHandler)
	api.PUT("/meetings/:id/minutes", AttachMeetingMinutesHandler)
	api.DELETE("/meetings/:id", DeleteMeetingHandler)
	api.GET("/meetings", ListMeetingsHandler)

	api.GET("/reports/monthly-summary", MonthlySummaryHandler)
	api.GET("/reports/expense-by-category", ExpenseByCategoryHandler)
	api.GET("/reports/budget-execution", BudgetExecutionReportHandler)
	api.GET("/reports/delinquency", DelinquencyReportHandler)
	api.GET("/reports/delinquency/export", ExportDelinquencyHandler)
	api.GET("/reports/monthly-summary/export", ExportMonthlySummaryHandler)
	api.GET("/reports/budget-execution/export", ExportBudgetExecutionHandler)
}
