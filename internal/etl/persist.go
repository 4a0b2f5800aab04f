package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	t "github.com/evanhutnik/weather-etl/internal/types"
)

// persist writes the aggregated table as CSV under the day-stamped
// folder. The path is deterministic for a given day and date range, so
// a re-run overwrites the same file.
func (s *Service) persist(table t.WeatherTable, now time.Time, start string, end string) (string, error) {
	dir := filepath.Join(s.dataRoot, now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("weather_data_%v_%v.csv", start, end))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	_ = w.Write(columns)
	for _, rec := range table {
		_ = w.Write(row(rec))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// uploadAll pushes every CSV in today's folder to the bucket under a
// key namespaced by today's date. Each file is independent; a missing
// upload config fails closed with one error event and zero attempts.
func (s *Service) uploadAll(ctx context.Context, now time.Time) {
	if s.s3c == nil {
		s.sink.Errorf("Error: %v", s.s3err)
		return
	}

	day := now.Format("2006-01-02")
	folder := filepath.Join(s.dataRoot, day)
	entries, err := os.ReadDir(folder)
	if err != nil {
		s.sink.Errorf("Error: today's folder %v does not exist.", folder)
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		key := day + "/" + e.Name()
		if err := s.s3c.Upload(ctx, filepath.Join(folder, e.Name()), key); err != nil {
			s.sink.Errorf("Failed to upload %v: %v", e.Name(), err)
			continue
		}
		s.sink.Infof("Successfully uploaded %v to %v", e.Name(), key)
	}
}
