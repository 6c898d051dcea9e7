package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	prayerDTO "jamath_backend/internals/features/prayer/settings/dto"
	prayerModel "jamath_backend/internals/features/prayer/settings/model"
	"jamath_backend/internals/helpers/cache"
)

const (
	CacheTTL = time.Hour

	fajrJamaat  = 30
	otherJamaat = 15
)

type settingsStore interface {
	Get(ctx context.Context) (prayerModel.PrayerSettings, error)
}

type timingsSource interface {
	Timings(ctx context.Context, day time.Time, loc Location) (Timings, error)
	HijriFor(ctx context.Context, day time.Time) (HijriDate, error)
}

type PrayerService struct {
	Settings settingsStore
	Source   timingsSource
	Cache    cache.Cache
	Location Location
	Zone     *time.Location
	Now      func() time.Time
	Log      *zap.Logger
}

func NewPrayerService(settings settingsStore, source timingsSource, c cache.Cache, loc Location, zone *time.Location, log *zap.Logger) *PrayerService {
	if zone == nil {
		zone = time.UTC
	}
	return &PrayerService{
		Settings: settings,
		Source:   source,
		Cache:    c,
		Location: loc,
		Zone:     zone,
		Now:      time.Now,
		Log:      log,
	}
}

// Today builds the prayer table for the current local day.
func (s *PrayerService) Today(ctx context.Context) (*prayerDTO.PrayerTimesResponse, error) {
	today := s.Now().In(s.Zone)

	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prayer settings: %w", err)
	}

	timings, err := s.timings(ctx, today)
	if err != nil {
		return nil, err
	}

	// the hijri date is decorative; a failure leaves it empty
	hijri, err := s.hijri(ctx, today.AddDate(0, 0, settings.HijriOffset))
	if err != nil {
		s.Log.Warn("hijri lookup failed", zap.Error(err))
	}

	return &prayerDTO.PrayerTimesResponse{
		Date:      today.Format("2006-01-02"),
		HijriDate: hijri,
		Prayers:   BuildPrayers(timings, settings),
		Fixed: []prayerDTO.FixedPrayer{
			{ID: "jumuah", Name: "Jumuah", Time: settings.JumuahTime},
			{ID: "eid", Name: "Eid", Time: settings.EidTime},
		},
	}, nil
}

// BuildPrayers applies the admin offsets to the API times and derives the
// jama'at times from the adjusted azan.
func BuildPrayers(t Timings, s prayerModel.PrayerSettings) []prayerDTO.PrayerRow {
	row := func(id, name, raw string, offset, jamaat int) prayerDTO.PrayerRow {
		adj, ok := ApplyOffset(raw, offset)
		if !ok {
			return prayerDTO.PrayerRow{ID: id, Name: name, Azan: "N/A", Jamaat: "N/A"}
		}
		out := prayerDTO.PrayerRow{ID: id, Name: name, Azan: To12Hour(adj), Jamaat: "-"}
		if jamaat > 0 {
			j, _ := ApplyOffset(adj, jamaat)
			out.Jamaat = To12Hour(j)
		}
		return out
	}

	return []prayerDTO.PrayerRow{
		row("fajr", "Fajr", t.Fajr, s.FajrOffset, fajrJamaat),
		row("sunrise", "Sunrise", t.Sunrise, s.SunriseOffset, 0),
		row("dhuhr", "Dhuhr", t.Dhuhr, s.DhuhrOffset, otherJamaat),
		row("asr", "Asr", t.Asr, s.AsrOffset, otherJamaat),
		row("maghrib", "Maghrib", t.Maghrib, s.MaghribOffset, otherJamaat),
		row("isha", "Isha", t.Isha, s.IshaOffset, otherJamaat),
	}
}

func (s *PrayerService) timings(ctx context.Context, day time.Time) (Timings, error) {
	key := fmt.Sprintf("aladhan:timings:%g:%g:%d:%s", s.Location.Latitude, s.Location.Longitude, s.Location.Method, day.Format("2006-01-02"))

	var t Timings
	if s.fromCache(ctx, key, &t) {
		return t, nil
	}
	t, err := s.Source.Timings(ctx, day, s.Location)
	if err != nil {
		return Timings{}, err
	}
	s.toCache(ctx, key, t)
	return t, nil
}

func (s *PrayerService) hijri(ctx context.Context, day time.Time) (string, error) {
	key := "aladhan:hijri:" + day.Format("2006-01-02")

	var h string
	if s.fromCache(ctx, key, &h) {
		return h, nil
	}
	d, err := s.Source.HijriFor(ctx, day)
	if err != nil {
		return "", err
	}
	h = d.String()
	s.toCache(ctx, key, h)
	return h, nil
}

// cache errors degrade to a fresh fetch
func (s *PrayerService) fromCache(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	return sonic.Unmarshal(raw, dst) == nil
}

func (s *PrayerService) toCache(ctx context.Context, key string, v any) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, raw, CacheTTL); err != nil {
		s.Log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
