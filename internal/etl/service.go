package etl

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/evanhutnik/weather-etl/internal/geocache"
	"github.com/evanhutnik/weather-etl/internal/joblog"
	"github.com/evanhutnik/weather-etl/internal/nominatim"
	"github.com/evanhutnik/weather-etl/internal/power"
	"github.com/evanhutnik/weather-etl/internal/s3"
	t "github.com/evanhutnik/weather-etl/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultNominatimBaseUrl = "https://nominatim.openstreetmap.org"
	defaultPowerBaseUrl     = "https://power.larc.nasa.gov/api/temporal/daily/point"
)

type Service struct {
	geo   *nominatim.Client
	power *power.Client
	cache *geocache.Cache
	s3c   *s3.Client
	s3err error

	dataRoot      string
	logRoot       string
	parallelFetch bool

	sink *joblog.Sink

	// Logger is the operator-facing console logger; pipeline events go
	// to the run's joblog sink instead.
	Logger *zap.SugaredLogger
}

func New() *Service {
	s := &Service{}

	baseLogger, _ := zap.NewProduction()
	s.Logger = baseLogger.Sugar()

	s.geo = nominatim.New(
		nominatim.BaseUrlOption(envDefault("nominatim_baseurl", defaultNominatimBaseUrl)),
	)

	s.power = power.New(
		power.BaseUrlOption(envDefault("power_baseurl", defaultPowerBaseUrl)),
	)

	disableCache, err := strconv.ParseBool(os.Getenv("disable_geocache"))
	if addr := os.Getenv("redis_address"); addr != "" && !(err == nil && disableCache) {
		s.cache = geocache.New(geocache.AddrOption(addr))
	}

	cfg, err := s3.ConfigFromEnv()
	if err != nil {
		s.s3err = err
	} else {
		s.s3c = s3.New(cfg)
	}

	s.dataRoot = envDefault("data_root", "Data")
	s.logRoot = envDefault("log_root", "Logs")

	parallelFetch, err := strconv.ParseBool(os.Getenv("parallel_fetch"))
	if err == nil {
		s.parallelFetch = parallelFetch
	}

	return s
}

// Run executes the pipeline once: collect one table per location in
// input order, aggregate with full-row dedup, persist, upload. Every
// per-location failure is isolated; anything unexpected is recovered,
// logged best-effort, and not propagated.
func (s *Service) Run(ctx context.Context, locations []string, start string, end string) {
	now := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.sink.Errorf("Error in fetching and processing weather data: %v", r)
		}
	}()

	sink, err := joblog.Open(s.logRoot, now)
	if err != nil {
		// Logging never aborts the run; a sink that failed to open
		// degrades to no-op with a console note.
		s.Logger.Errorf("Error setting up log sink under %v: %v", s.logRoot, err)
	} else {
		s.sink = sink
		defer sink.Sync()
	}

	tables := make([]t.WeatherTable, len(locations))
	if s.parallelFetch {
		g := new(errgroup.Group)
		for i, location := range locations {
			i, location := i, location
			g.Go(func() error {
				tables[i] = s.collect(ctx, location, start, end)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, location := range locations {
			tables[i] = s.collect(ctx, location, start, end)
		}
	}

	merged := Aggregate(tables)
	if len(merged) == 0 {
		s.sink.Errorf("No weather data fetched or processed successfully.")
		return
	}

	path, err := s.persist(merged, now, start, end)
	if err != nil {
		s.sink.Errorf("Error saving merged weather data: %v", err)
	} else {
		s.sink.Infof("Weather data successfully fetched and saved to: %v", path)
	}

	s.uploadAll(ctx, now)
}

// collect runs resolve → fetch → normalize for one location. Any stage
// failure yields an empty table plus one error event; the run goes on.
func (s *Service) collect(ctx context.Context, location string, start string, end string) t.WeatherTable {
	coords := s.resolve(ctx, location)
	if coords == nil {
		return nil
	}

	raw, err := s.power.Daily(ctx, *coords, start, end)
	if err != nil {
		s.sink.Errorf("Error fetching weather data for coordinates (%v, %v): %v", coords.Longitude, coords.Latitude, err)
		return nil
	}

	table, err := Normalize(raw, location)
	if err != nil {
		s.sink.Errorf("Error processing weather data for %v: %v", location, err)
		return nil
	}
	return table
}

func (s *Service) resolve(ctx context.Context, location string) *t.Coordinates {
	cached, err := s.cache.Lookup(ctx, location)
	if err != nil {
		s.Logger.Errorf("Error looking up cached coordinates for %v: %v", location, err)
	}
	if cached != nil {
		return cached
	}

	coords, err := s.geo.Search(ctx, location)
	if err != nil {
		s.sink.Errorf("Error fetching coordinates for %v: %v", location, err)
		return nil
	}
	if coords == nil {
		s.sink.Errorf("Location '%v' not found.", location)
		return nil
	}

	if err := s.cache.Store(ctx, location, *coords); err != nil {
		s.Logger.Errorf("Error caching coordinates for %v: %v", location, err)
	}
	return coords
}

func envDefault(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
