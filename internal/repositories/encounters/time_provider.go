package encounters

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockencrepo github.com/chronicler-rpg/engine/internal/repositories/encounters TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
