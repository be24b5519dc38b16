package newsportal

import (
	"context"
	"fmt"
	"time"
)

const (
	statusActive   = "Active"
	statusInactive = "Inactive"
)

// NewsStatistics lists news created within [from, to], newest first.
func (m *Manager) NewsStatistics(ctx context.Context, from, to time.Time) (*NewsStatistics, error) {
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}

	list, err := m.db.NewsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("db get news by period: %w", err)
	}

	rows := make([]NewsStatisticsRow, len(list))
	for i, n := range list {
		row := NewsStatisticsRow{
			NewsID:     n.ID,
			Title:      n.Title,
			CreatedAt:  n.CreatedAt,
			Status:     n.Status,
			StatusText: statusInactive,
		}
		if n.Status {
			row.StatusText = statusActive
		}
		if n.Category != nil {
			row.CategoryName = n.Category.Name
		}
		if n.CreatedBy != nil {
			row.CreatedByName = n.CreatedBy.Name
		}
		rows[i] = row
	}

	return &NewsStatistics{
		StartDate: from,
		EndDate:   to,
		Total:     len(rows),
		Rows:      rows,
	}, nil
}
