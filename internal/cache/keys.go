package cache

import "fmt"

func SnapshotKey(windowDays int) string {
	return fmt.Sprintf("latency:snapshot:%dd", windowDays)
}

func RateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:%s", client)
}
