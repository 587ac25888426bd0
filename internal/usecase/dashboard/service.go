package dashboard

import (
	"context"

	domainUser "admin-dashboard/internal/domain/user"
	appErrors "admin-dashboard/pkg/errors"
)

// Stats is the headline card data on the dashboard landing page.
type Stats struct {
	TotalUsers  int64   `json:"totalUsers"`
	ActiveUsers int64   `json:"activeUsers"`
	Revenue     float64 `json:"revenue"`
	Growth      float64 `json:"growth"`
}

// ChartPoint is a single series entry for the dashboard charts.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Date  string  `json:"date,omitempty"`
}

// Service aggregates dashboard data. Revenue, growth and the chart series
// are demo figures; only the user counts come from the store.
type Service struct {
	userRepo domainUser.Repository
}

func NewService(userRepo domainUser.Repository) *Service {
	return &Service{userRepo: userRepo}
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	// Last-login tracking does not exist yet; approximate active users as
	// 70% of the total.
	active := total * 7 / 10

	return &Stats{
		TotalUsers:  total,
		ActiveUsers: active,
		Revenue:     45231.89,
		Growth:      12.5,
	}, nil
}

func (s *Service) GetChartData(_ context.Context, chartType string) ([]ChartPoint, error) {
	switch chartType {
	case "revenue":
		return []ChartPoint{
			{Name: "Jan", Value: 4000, Date: "2024-01"},
			{Name: "Feb", Value: 3000, Date: "2024-02"},
			{Name: "Mar", Value: 5000, Date: "2024-03"},
			{Name: "Apr", Value: 4500, Date: "2024-04"},
			{Name: "May", Value: 6000, Date: "2024-05"},
			{Name: "Jun", Value: 5500, Date: "2024-06"},
		}, nil
	case "users":
		return []ChartPoint{
			{Name: "Jan", Value: 120},
			{Name: "Feb", Value: 150},
			{Name: "Mar", Value: 180},
			{Name: "Apr", Value: 220},
			{Name: "May", Value: 250},
			{Name: "Jun", Value: 280},
		}, nil
	case "activity":
		return []ChartPoint{
			{Name: "Mon", Value: 65},
			{Name: "Tue", Value: 59},
			{Name: "Wed", Value: 80},
			{Name: "Thu", Value: 81},
			{Name: "Fri", Value: 56},
			{Name: "Sat", Value: 55},
			{Name: "Sun", Value: 40},
		}, nil
	default:
		return nil, appErrors.NewAppError("INVALID_CHART_TYPE", "Invalid chart type", nil)
	}
}
