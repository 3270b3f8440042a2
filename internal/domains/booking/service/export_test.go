package service

import "time"

func SetClock(b Booking, now func() time.Time) {
	b.(*serviceImpl).now = now
}
