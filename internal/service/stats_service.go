package service

import (
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/repository"
	"github.com/scoutalina/scout-backend-go/internal/stats"
)

// StatsService derives dashboard aggregates from persisted routes and match
// projections.
type StatsService struct {
	stats *repository.StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{stats: statsRepo}
}

// Summary aggregates the user's all-time and last-7-days activity.
func (s *StatsService) Summary(userID string) (*models.StatsSummary, error) {
	totalRoutes, totalDistance, err := s.stats.RouteTotals(userID, 0)
	if err != nil {
		return nil, err
	}
	totalProps, err := s.stats.DistinctProperties(userID, 0)
	if err != nil {
		return nil, err
	}

	rarityCounts, err := s.stats.RarityCounts(userID)
	if err != nil {
		return nil, err
	}

	prices, err := s.stats.DiscoveredPrices(userID)
	if err != nil {
		return nil, err
	}
	q1, median, q3 := stats.Quartiles(prices)

	weekRoutes, weekDistance, err := s.stats.RouteTotals(userID, 7)
	if err != nil {
		return nil, err
	}
	weekProps, err := s.stats.DistinctProperties(userID, 7)
	if err != nil {
		return nil, err
	}

	return &models.StatsSummary{
		TotalRoutes:     totalRoutes,
		TotalDistanceM:  totalDistance,
		TotalProperties: totalProps,
		RarityBreakdown: models.RarityBreakdown{
			Common:    rarityCounts[TierCommon],
			Rare:      rarityCounts[TierRare],
			Epic:      rarityCounts[TierEpic],
			Legendary: rarityCounts[TierLegendary],
		},
		PriceQuartiles: models.PriceQuartiles{Q1: q1, Median: median, Q3: q3},
		ThisWeek: models.WeekStats{
			Routes:     weekRoutes,
			Properties: weekProps,
			DistanceM:  weekDistance,
		},
	}, nil
}

// Healthy reports database connectivity.
func (s *StatsService) Healthy() error {
	return s.stats.Ping()
}
