package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	memberDTO "jamath_backend/internals/features/members/members/dto"
	memberModel "jamath_backend/internals/features/members/members/model"
)

var ErrMissingColumns = errors.New("sheet must have name and mr_no columns")

// RegisterHeader is the column order of the exported register. Uploaded
// sheets are matched by header name in any order.
var RegisterHeader = []string{
	"name", "father_name", "address", "pmj_no", "mr_no", "head_pmj_no",
	"annual_subs", "arrears", "book_no", "page_no", "status",
}

// ParseCSV reads an uploaded member sheet in CSV form.
func ParseCSV(r io.Reader) ([]memberDTO.CreateMemberRequest, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	return rowsToRequests(records)
}

// ParseXLSX reads the first worksheet of an uploaded workbook.
func ParseXLSX(r io.Reader) ([]memberDTO.CreateMemberRequest, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrMissingColumns
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return rowsToRequests(rows)
}

// rowsToRequests maps a header row plus data rows onto requests. Rows with
// an unreadable number are reported and skipped; blank rows are ignored.
func rowsToRequests(records [][]string) ([]memberDTO.CreateMemberRequest, []string, error) {
	if len(records) == 0 {
		return nil, nil, ErrMissingColumns
	}

	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := idx["name"]; !ok {
		return nil, nil, ErrMissingColumns
	}
	if _, ok := idx["mr_no"]; !ok {
		return nil, nil, ErrMissingColumns
	}

	var (
		out    []memberDTO.CreateMemberRequest
		issues []string
	)
	for n, rec := range records[1:] {
		line := n + 2
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("name") == "" && get("mr_no") == "" {
			continue
		}

		mrNo, err := strconv.ParseInt(get("mr_no"), 10, 64)
		if err != nil {
			issues = append(issues, fmt.Sprintf("Row %d: invalid mr_no %q", line, get("mr_no")))
			continue
		}
		pmjNo, err := optionalInt(get("pmj_no"))
		if err != nil {
			issues = append(issues, fmt.Sprintf("Row %d: invalid pmj_no %q", line, get("pmj_no")))
			continue
		}
		headPmjNo, err := optionalInt(get("head_pmj_no"))
		if err != nil {
			issues = append(issues, fmt.Sprintf("Row %d: invalid head_pmj_no %q", line, get("head_pmj_no")))
			continue
		}

		out = append(out, memberDTO.CreateMemberRequest{
			Name:       get("name"),
			FatherName: get("father_name"),
			Address:    get("address"),
			PmjNo:      pmjNo,
			MrNo:       mrNo,
			HeadPmjNo:  headPmjNo,
			AnnualSubs: get("annual_subs"),
			Arrears:    get("arrears"),
			BookNo:     get("book_no"),
			PageNo:     get("page_no"),
			Status:     strings.ToLower(get("status")),
		})
	}
	return out, issues, nil
}

func optionalInt(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, nil
	}
	return &v, nil
}

// ExportXLSX renders the member register as a workbook.
func ExportXLSX(members []memberModel.Member) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Members"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(RegisterHeader))
	for i, h := range RegisterHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(RegisterHeader), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, m := range members {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			m.Name, deref(m.FatherName), deref(m.Address), intOrBlank(m.PmjNo), m.MrNo,
			intOrBlank(m.HeadPmjNo), m.AnnualSubs, m.Arrears, deref(m.BookNo), deref(m.PageNo), m.Status,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrBlank(v *int64) any {
	if v == nil {
		return ""
	}
	return *v
}
