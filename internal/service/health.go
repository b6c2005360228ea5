package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthReport is the payload of the health endpoint.
type HealthReport struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

const (
	StateOK            = "ok"
	StateDegraded      = "degraded"
	StateUnreachable   = "unreachable"
	StateNotConfigured = "not configured"
)

// HealthService reports reachability of the row store and Redis. A missing
// backend reads as "not configured" rather than an error, so a half-set-up
// instance still answers.
type HealthService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthService(db *gorm.DB, rdb *redis.Client) *HealthService {
	return &HealthService{db: db, rdb: rdb}
}

func (s *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{Status: StateOK}

	switch {
	case s.db == nil:
		report.Database = StateNotConfigured
		report.Status = StateDegraded
	default:
		sqlDB, err := s.db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			report.Database = StateUnreachable
			report.Status = StateDegraded
		} else {
			report.Database = StateOK
		}
	}

	switch {
	case s.rdb == nil:
		report.Redis = StateNotConfigured
		report.Status = StateDegraded
	default:
		if err := s.rdb.Ping(ctx).Err(); err != nil {
			report.Redis = StateUnreachable
			report.Status = StateDegraded
		} else {
			report.Redis = StateOK
		}
	}

	return report
}
