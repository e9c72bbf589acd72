package update

import (
	"fmt"

	"devdesk/internal/timer"
)

func formatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	h := totalSec / 3600
	min := (totalSec % 3600) / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, min, sec)
}

func timerDurationFromSeconds(totalSec int) timer.CustomDuration {
	if totalSec < 0 {
		totalSec = 0
	}
	return timer.CustomDuration{
		Hours:   totalSec / 3600,
		Minutes: (totalSec % 3600) / 60,
		Seconds: totalSec % 60,
	}
}
