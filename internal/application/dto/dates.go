package dto

import (
	"strings"
	"time"
)

// DateLayout formato de fecha aceptado en entradas (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate interpreta s como YYYY-MM-DD. Si s está vacío devuelve def truncado al día.
func ParseDate(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Date(def.Year(), def.Month(), def.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(DateLayout, s)
}
