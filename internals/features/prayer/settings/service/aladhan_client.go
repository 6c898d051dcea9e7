package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const aladhanDateLayout = "02-01-2006"

// Timings are the raw 24-hour times Aladhan returns ("05:12" or "05:12 (IST)").
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

type HijriDate struct {
	Day   string `json:"day"`
	Month struct {
		Number int    `json:"number"`
		En     string `json:"en"`
	} `json:"month"`
	Year string `json:"year"`
}

func (h HijriDate) String() string {
	return fmt.Sprintf("%s %s %s AH", strings.TrimLeft(h.Day, "0"), h.Month.En, h.Year)
}

type aladhanEnvelope[T any] struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   T      `json:"data"`
}

type Location struct {
	Latitude  float64
	Longitude float64
	Method    int
}

// AladhanClient calls the public Aladhan prayer-times API.
type AladhanClient struct {
	httpClient *resty.Client
}

func NewAladhanClient(baseURL string) *AladhanClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")
	return &AladhanClient{httpClient: client}
}

func (c *AladhanClient) Timings(ctx context.Context, day time.Time, loc Location) (Timings, error) {
	var out aladhanEnvelope[struct {
		Timings Timings `json:"timings"`
	}]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("date", day.Format(aladhanDateLayout)).
		SetQueryParams(map[string]string{
			"latitude":  strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			"longitude": strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
			"method":    strconv.Itoa(loc.Method),
		}).
		SetResult(&out).
		Get("/timings/{date}")
	if err != nil {
		return Timings{}, fmt.Errorf("aladhan timings: %w", err)
	}
	if resp.IsError() || out.Code != 200 {
		return Timings{}, fmt.Errorf("aladhan timings: status %d", resp.StatusCode())
	}
	return out.Data.Timings, nil
}

// HijriFor converts a Gregorian day.
func (c *AladhanClient) HijriFor(ctx context.Context, day time.Time) (HijriDate, error) {
	var out aladhanEnvelope[struct {
		Hijri HijriDate `json:"hijri"`
	}]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("date", day.Format(aladhanDateLayout)).
		SetResult(&out).
		Get("/gToH/{date}")
	if err != nil {
		return HijriDate{}, fmt.Errorf("aladhan gToH: %w", err)
	}
	if resp.IsError() || out.Code != 200 {
		return HijriDate{}, fmt.Errorf("aladhan gToH: status %d", resp.StatusCode())
	}
	return out.Data.Hijri, nil
}
