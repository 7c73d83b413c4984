package booking

import "time"

func minutesDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
