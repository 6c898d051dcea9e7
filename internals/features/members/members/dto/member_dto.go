package dto

import "strings"

// CreateMemberRequest is the admin form and one row of a CSV upload.
type CreateMemberRequest struct {
	Name       string `json:"name" form:"name" validate:"required,max=150"`
	FatherName string `json:"father_name" form:"father_name" validate:"omitempty,max=150"`
	Address    string `json:"address" form:"address"`
	PmjNo      *int64 `json:"pmj_no" form:"pmj_no" validate:"omitempty,gt=0"`
	MrNo       int64  `json:"mr_no" form:"mr_no" validate:"required,gt=0"`
	HeadPmjNo  *int64 `json:"head_pmj_no" form:"head_pmj_no" validate:"omitempty,gt=0"`
	AnnualSubs string `json:"annual_subs" form:"annual_subs" validate:"omitempty,max=20"`
	Arrears    string `json:"arrears" form:"arrears" validate:"omitempty,max=20"`
	BookNo     string `json:"book_no" form:"book_no" validate:"omitempty,max=20"`
	PageNo     string `json:"page_no" form:"page_no" validate:"omitempty,max=20"`
	Status     string `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateMemberRequest is the admin edit form. Absent fields are left as they
// are; an empty father_name, address, book_no or page_no clears the column.
// A blank name or amount is ignored.
type UpdateMemberRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=150"`
	FatherName *string `json:"father_name" validate:"omitempty,max=150"`
	Address    *string `json:"address"`
	AnnualSubs *string `json:"annual_subs" validate:"omitempty,max=20"`
	Arrears    *string `json:"arrears" validate:"omitempty,max=20"`
	BookNo     *string `json:"book_no" validate:"omitempty,max=20"`
	PageNo     *string `json:"page_no" validate:"omitempty,max=20"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Changes maps the present fields to column values.
func (r UpdateMemberRequest) Changes() map[string]interface{} {
	out := map[string]interface{}{}
	setText := func(col string, v *string) {
		if v == nil {
			return
		}
		if s := strings.TrimSpace(*v); s != "" {
			out[col] = s
		}
	}
	setText("name", r.Name)
	setText("annual_subs", r.AnnualSubs)
	setText("arrears", r.Arrears)
	nullable := map[string]*string{
		"father_name": r.FatherName,
		"address":     r.Address,
		"book_no":     r.BookNo,
		"page_no":     r.PageNo,
	}
	for col, v := range nullable {
		if v == nil {
			continue
		}
		if s := strings.TrimSpace(*v); s != "" {
			out[col] = s
		} else {
			out[col] = nil
		}
	}
	if r.Status != nil && *r.Status != "" {
		out["status"] = *r.Status
	}
	return out
}

type ConvertMemberRequest struct {
	MrNo     int64 `json:"mr_no" validate:"required,gt=0"`
	NewPmjNo int64 `json:"pmj_no" validate:"required,gt=0"`
}

type BulkResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

type ListMembersQuery struct {
	Status string
	Q      string
}
