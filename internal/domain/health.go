package domain

import (
	"context"
	"time"
)

type HealthStatus struct {
	OK   bool      `json:"ok"`
	Time time.Time `json:"time"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}
