package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
)

type ChartPoint struct {
	Name   string          `json:"name"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}

// GetBookingChart buckets sales and profit for the dashboard chart:
// daily = last 7 days, weekly = last 4 weeks, monthly = last 6 months.
func GetBookingChart(ctx context.Context, period string) ([]ChartPoint, error) {
	switch period {
	case "weekly":
		return weeklyChart(ctx)
	case "monthly":
		return monthlyChart(ctx)
	default:
		return dailyChart(ctx)
	}
}

func dailyChart(ctx context.Context) ([]ChartPoint, error) {
	points := make([]ChartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i)
		start, end := utils.GetDayRange(day)
		totals, err := GetBookingTotalsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		points = append(points, ChartPoint{
			Name:   day.Format("Mon"),
			Sales:  totals.Sales,
			Profit: totals.Profit,
		})
	}
	return points, nil
}

func weeklyChart(ctx context.Context) ([]ChartPoint, error) {
	weekStart := utils.GetThisWeekStart()
	points := make([]ChartPoint, 0, 4)
	for i := 3; i >= 0; i-- {
		start := weekStart.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 7)
		totals, err := GetBookingTotalsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		points = append(points, ChartPoint{
			Name:   fmt.Sprintf("Week %d", 4-i),
			Sales:  totals.Sales,
			Profit: totals.Profit,
		})
	}
	return points, nil
}

func monthlyChart(ctx context.Context) ([]ChartPoint, error) {
	points := make([]ChartPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		start, end := utils.GetMonthRangeBefore(i)
		totals, err := GetBookingTotalsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		points = append(points, ChartPoint{
			Name:   start.Format("Jan"),
			Sales:  totals.Sales,
			Profit: totals.Profit,
		})
	}
	return points, nil
}
