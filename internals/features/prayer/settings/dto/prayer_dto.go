package dto

import prayerModel "jamath_backend/internals/features/prayer/settings/model"

type UpdateSettingsRequest struct {
	FajrOffset    int    `json:"fajr_offset" validate:"gte=-120,lte=120"`
	SunriseOffset int    `json:"sunrise_offset" validate:"gte=-120,lte=120"`
	DhuhrOffset   int    `json:"dhuhr_offset" validate:"gte=-120,lte=120"`
	AsrOffset     int    `json:"asr_offset" validate:"gte=-120,lte=120"`
	MaghribOffset int    `json:"maghrib_offset" validate:"gte=-120,lte=120"`
	IshaOffset    int    `json:"isha_offset" validate:"gte=-120,lte=120"`
	JumuahTime    string `json:"jumuah_time" validate:"required,max=10"`
	EidTime       string `json:"eid_time" validate:"required,max=10"`
	HijriOffset   int    `json:"hijri_offset" validate:"gte=-3,lte=3"`
}

func (r UpdateSettingsRequest) ToModel() *prayerModel.PrayerSettings {
	return &prayerModel.PrayerSettings{
		ID:            prayerModel.SettingsID,
		FajrOffset:    r.FajrOffset,
		SunriseOffset: r.SunriseOffset,
		DhuhrOffset:   r.DhuhrOffset,
		AsrOffset:     r.AsrOffset,
		MaghribOffset: r.MaghribOffset,
		IshaOffset:    r.IshaOffset,
		JumuahTime:    r.JumuahTime,
		EidTime:       r.EidTime,
		HijriOffset:   r.HijriOffset,
	}
}

type PrayerRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Azan   string `json:"azan"`
	Jamaat string `json:"jamaat"`
}

type FixedPrayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}

type PrayerTimesResponse struct {
	Date      string        `json:"date"`
	HijriDate string        `json:"hijri_date"`
	Prayers   []PrayerRow   `json:"prayers"`
	Fixed     []FixedPrayer `json:"fixed"`
}
