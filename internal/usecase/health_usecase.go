package usecase

import (
	"context"
	"time"

	"jobly-relay/internal/domain"
)

type healthUsecase struct {
	now func() time.Time
}

func NewHealthUsecase() domain.HealthUsecase {
	return &healthUsecase{now: time.Now}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	return domain.HealthStatus{
		OK:   true,
		Time: u.now().UTC(),
	}
}
