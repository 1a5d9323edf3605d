package reports

import (
	"context"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/shopspring/decimal"
)

// DelinquentHouseGroup aggregates one house's unpaid fees.
type DelinquentHouseGroup struct {
	HouseId     int                       `json:"house_id"`
	Block       string                    `json:"block"`
	Number      string                    `json:"number"`
	TotalOwed   decimal.Decimal           `json:"total_owed"`
	MonthsOwed  int                       `json:"months_owed"`
	OldestDue   time.Time                 `json:"oldest_due"`
	MaxDaysLate int                       `json:"max_days_late"`
	Items       []*models.DelinquentHouse `json:"items"`
}

// DelinquencyReport groups unpaid fees per house, worst debtors first.
type DelinquencyReport struct {
	AsOf       time.Time               `json:"as_of"`
	TotalOwed  decimal.Decimal         `json:"total_owed"`
	HouseCount int                     `json:"house_count"`
	Houses     []*DelinquentHouseGroup `json:"houses"`
}

func BuildDelinquencyReport(ctx context.Context, now time.Time) (*DelinquencyReport, error) {
	rows, err := models.ListDelinquentHouses(ctx, now)
	if err != nil {
		return nil, err
	}

	byHouse := make(map[int]*DelinquentHouseGroup)
	total := decimal.Zero
	for _, row := range rows {
		group, ok := byHouse[row.HouseId]
		if !ok {
			group = &DelinquentHouseGroup{
				HouseId:   row.HouseId,
				Block:     row.Block,
				Number:    row.Number,
				TotalOwed: decimal.Zero,
				OldestDue: row.DueDate,
			}
			byHouse[row.HouseId] = group
		}
		group.TotalOwed = group.TotalOwed.Add(row.AmountOwed)
		group.MonthsOwed++
		if row.DueDate.Before(group.OldestDue) {
			group.OldestDue = row.DueDate
		}
		if row.DaysLate > group.MaxDaysLate {
			group.MaxDaysLate = row.DaysLate
		}
		group.Items = append(group.Items, row)
		total = total.Add(row.AmountOwed)
	}

	houses := make([]*DelinquentHouseGroup, 0, len(byHouse))
	for _, group := range byHouse {
		houses = append(houses, group)
	}
	sort.Slice(houses, func(i, j int) bool {
		return houses[i].TotalOwed.GreaterThan(houses[j].TotalOwed)
	})

	return &DelinquencyReport{
		AsOf:       now,
		TotalOwed:  total,
		HouseCount: len(houses),
		Houses:     houses,
	}, nil
}
