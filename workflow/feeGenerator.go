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

const feeGeneratorModule = "workflow/feeGenerator"

// FeeGenerator issues the next month's administration fee for every
// active property once its current period lapses. The redis lock inside
// GenerateNextMonthFee keeps multiple instances from double-issuing.
type FeeGenerator struct {
	Interval time.Duration
	tracer   trace.Tracer
}

func NewFeeGenerator(tracer trace.Tracer) *FeeGenerator {
	hours, err := strconv.Atoi(os.Getenv("FEE_GENERATOR_INTERVAL_HOURS"))
	if err != nil || hours <= 0 {
		hours = 12
	}
	return &FeeGenerator{Interval: time.Duration(hours) * time.Hour, tracer: tracer}
}

// Run polls until ctx is cancelled.
func (g *FeeGenerator) Run(ctx context.Context) {
	ticker := time.NewTicker(g.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.tick(ctx)
		}
	}
}

func (g *FeeGenerator) tick(ctx context.Context) {
	ctx, span := g.tracer.Start(ctx, "feeGenerator.tick")
	defer span.End()

	properties, err := models.GetAllProperties(ctx)
	if err != nil {
		config.LogError(config.GetLogger(), feeGeneratorModule, "tick", "list properties", nil, err)
		return
	}

	now := time.Now()
	for _, property := range properties {
		if property.IsActive != nil && !*property.IsActive {
			continue
		}
		propertyCtx := utils.SetPropertyIdInContext(ctx, property.ID)

		year, month, err := models.NextFeePeriod(propertyCtx, now)
		if err != nil {
			config.LogError(config.GetLogger(), feeGeneratorModule, "tick", "next period", property.ID, err)
			continue
		}
		// only issue once the period has started
		periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
		if now.Before(periodStart) {
			continue
		}

		if _, err := models.GenerateNextMonthFee(propertyCtx); err != nil {
			// "no previous fee" just means the property never issued manually
			if err.Error() == "no previous fee to copy from" {
				continue
			}
			config.LogError(config.GetLogger(), feeGeneratorModule, "tick", "generate fee", property.ID, err)
		}
	}
}
