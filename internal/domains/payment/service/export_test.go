package service

import "time"

func SetClock(p Payment, now func() time.Time) {
	p.(*serviceImpl).now = now
}
