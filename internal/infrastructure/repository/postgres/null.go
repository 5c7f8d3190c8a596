package postgres

import "time"

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func nullableTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	return &value
}

func timeOrZero(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}

func nullableFloat64(value float64) *float64 {
	if value == 0 {
		return nil
	}
	return &value
}

func float64OrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
