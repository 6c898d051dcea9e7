package dto

import (
	"strings"
	"time"

	noticeModel "jamath_backend/internals/features/home/notices/model"
)

type CreateNoticeRequest struct {
	Heading     string `json:"heading" form:"heading" validate:"required,max=255"`
	Details     string `json:"details" form:"details" validate:"required"`
	NoticeDate  string `json:"notice_date" form:"notice_date" validate:"required,datetime=2006-01-02"`
	ConfirmedBy string `json:"confirmed_by" form:"confirmed_by" validate:"omitempty,max=150"`
}

func (r CreateNoticeRequest) ToModel() *noticeModel.Notice {
	date, _ := time.Parse("2006-01-02", r.NoticeDate)
	return &noticeModel.Notice{
		Heading:     r.Heading,
		Details:     r.Details,
		NoticeDate:  date,
		ConfirmedBy: r.ConfirmedBy,
	}
}

// UpdateNoticeRequest edits a published notice; absent fields stay as they
// are. Edits are not pushed to devices again.
type UpdateNoticeRequest struct {
	Heading     *string `json:"heading" validate:"omitempty,max=255"`
	Details     *string `json:"details"`
	NoticeDate  *string `json:"notice_date" validate:"omitempty,datetime=2006-01-02"`
	ConfirmedBy *string `json:"confirmed_by" validate:"omitempty,max=150"`
}

func (r UpdateNoticeRequest) Changes() map[string]interface{} {
	out := map[string]interface{}{}
	if r.Heading != nil && strings.TrimSpace(*r.Heading) != "" {
		out["heading"] = strings.TrimSpace(*r.Heading)
	}
	if r.Details != nil && strings.TrimSpace(*r.Details) != "" {
		out["details"] = *r.Details
	}
	if r.NoticeDate != nil && *r.NoticeDate != "" {
		date, _ := time.Parse("2006-01-02", *r.NoticeDate)
		out["notice_date"] = date
	}
	if r.ConfirmedBy != nil {
		out["confirmed_by"] = strings.TrimSpace(*r.ConfirmedBy)
	}
	return out
}
