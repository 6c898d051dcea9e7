package model

import "time"

// SettingsID is the single settings row.
const SettingsID = 1

type PrayerSettings struct {
	ID            int       `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	FajrOffset    int       `gorm:"column:fajr_offset;not null;default:0" json:"fajr_offset"`
	SunriseOffset int       `gorm:"column:sunrise_offset;not null;default:0" json:"sunrise_offset"`
	DhuhrOffset   int       `gorm:"column:dhuhr_offset;not null;default:0" json:"dhuhr_offset"`
	AsrOffset     int       `gorm:"column:asr_offset;not null;default:0" json:"asr_offset"`
	MaghribOffset int       `gorm:"column:maghrib_offset;not null;default:0" json:"maghrib_offset"`
	IshaOffset    int       `gorm:"column:isha_offset;not null;default:0" json:"isha_offset"`
	JumuahTime    string    `gorm:"column:jumuah_time;type:varchar(10);not null" json:"jumuah_time"`
	EidTime       string    `gorm:"column:eid_time;type:varchar(10);not null" json:"eid_time"`
	HijriOffset   int       `gorm:"column:hijri_offset;not null" json:"hijri_offset"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PrayerSettings) TableName() string {
	return "prayer_settings"
}

// Defaults is used until an admin saves the settings row.
func Defaults() PrayerSettings {
	return PrayerSettings{
		ID:          SettingsID,
		JumuahTime:  "01:00 PM",
		EidTime:     "08:00 AM",
		HijriOffset: -1,
	}
}
