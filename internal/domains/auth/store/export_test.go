package store

import "time"

func SetClock(s Store, now func() time.Time) {
	s.(*redisStore).now = now
}
