package etl

import (
	"strings"

	t "github.com/evanhutnik/weather-etl/internal/types"
)

// Aggregate concatenates the tables in input order and drops rows that
// duplicate an earlier row across every field. First occurrence wins.
func Aggregate(tables []t.WeatherTable) t.WeatherTable {
	var merged t.WeatherTable
	seen := make(map[string]struct{})
	for _, table := range tables {
		for _, rec := range table {
			k := strings.Join(row(rec), "\x1f")
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, rec)
		}
	}
	return merged
}
