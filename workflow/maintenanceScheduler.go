package workflow

import (
	"context"
	"os"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"go.opentelemetry.io/otel/trace"
)

const maintenanceSchedulerModule = "workflow/maintenanceScheduler"

// MaintenanceScheduler materializes recurring maintenance schedules
// into concrete tasks when their next run date arrives.
type MaintenanceScheduler struct {
	Interval time.Duration
	tracer   trace.Tracer
}

func NewMaintenanceScheduler(tracer trace.Tracer) *MaintenanceScheduler {
	minutes, err := strconv.Atoi(os.Getenv("MAINTENANCE_SCHEDULER_INTERVAL_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return &MaintenanceScheduler{Interval: time.Duration(minutes) * time.Minute, tracer: tracer}
}

// Run polls until ctx is cancelled.
func (s *MaintenanceScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *MaintenanceScheduler) tick(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "maintenanceScheduler.tick")
	defer span.End()

	properties, err := models.GetAllProperties(ctx)
	if err != nil {
		config.LogError(config.GetLogger(), maintenanceSchedulerModule, "tick", "list properties", nil, err)
		return
	}

	now := time.Now()
	for _, property := range properties {
		if property.IsActive != nil && !*property.IsActive {
			continue
		}
		propertyCtx := utils.SetPropertyIdInContext(ctx, property.ID)

		if _, err := models.GenerateDueScheduledTasks(propertyCtx, now); err != nil {
			config.LogError(config.GetLogger(), maintenanceSchedulerModule, "tick", "generate tasks", property.ID, err)
		}
	}
}
