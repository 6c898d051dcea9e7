package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jamath_backend/internals/databases/dbtest"
	memberDTO "jamath_backend/internals/features/members/members/dto"
	memberModel "jamath_backend/internals/features/members/members/model"
	memberRepo "jamath_backend/internals/features/members/members/repository"
	authService "jamath_backend/internals/features/users/auth/service"
)

type fakeAccounts struct {
	created   map[string]string
	deleted   []uuid.UUID
	createErr error
	ids       []uuid.UUID
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{created: map[string]string{}}
}

func (f *fakeAccounts) CreateUser(_ context.Context, email, password string) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created[email] = password
	id := uuid.New()
	f.ids = append(f.ids, id)
	return id, nil
}

func (f *fakeAccounts) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newService(t *testing.T) (*MemberService, *memberRepo.MemberRepository, *fakeAccounts) {
	t.Helper()
	repo := memberRepo.NewMemberRepository(dbtest.SQLite(t, &memberModel.Member{}))
	accounts := newFakeAccounts()
	return NewMemberService(repo, accounts, "pmjmasjid.com", zap.NewNop()), repo, accounts
}

func ptr(v int64) *int64 { return &v }

func TestCreate_HeadGetsAccount(t *testing.T) {
	svc, _, accounts := newService(t)

	m, err := svc.Create(context.Background(), memberDTO.CreateMemberRequest{
		Name: "Abdul Rahman", PmjNo: ptr(100), MrNo: 555,
	})
	require.NoError(t, err)
	assert.Equal(t, "0010000555", accounts.created["100@pmjmasjid.com"])
	require.NotNil(t, m.AuthID)
	assert.Equal(t, accounts.ids[0], *m.AuthID)
	assert.Equal(t, "0", m.AnnualSubs)
	assert.Equal(t, memberModel.StatusActive, m.Status)
}

func TestCreate_DependentHasNoAccount(t *testing.T) {
	svc, _, accounts := newService(t)

	m, err := svc.Create(context.Background(), memberDTO.CreateMemberRequest{
		Name: "Aisha", MrNo: 556, HeadPmjNo: ptr(100), AnnualSubs: "200",
	})
	require.NoError(t, err)
	assert.Empty(t, accounts.created)
	assert.Nil(t, m.AuthID)
}

func TestCreate_AlreadyRegisteredIsTolerated(t *testing.T) {
	svc, _, accounts := newService(t)
	accounts.createErr = authService.ErrAlreadyRegistered

	m, err := svc.Create(context.Background(), memberDTO.CreateMemberRequest{Name: "X", PmjNo: ptr(7), MrNo: 70})
	require.NoError(t, err)
	assert.Nil(t, m.AuthID)
}

func TestCreate_AuthFailureAborts(t *testing.T) {
	svc, repo, accounts := newService(t)
	accounts.createErr = errors.New("boom")

	_, err := svc.Create(context.Background(), memberDTO.CreateMemberRequest{Name: "X", PmjNo: ptr(7), MrNo: 70})
	require.Error(t, err)

	rows, total, err := repo.List(context.Background(), memberDTO.ListMembersQuery{}, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}

func TestBulkCreate_DuplicateMrNo(t *testing.T) {
	svc, _, _ := newService(t)

	res := svc.BulkCreate(context.Background(), []memberDTO.CreateMemberRequest{
		{Name: "A", MrNo: 1},
		{Name: "B", MrNo: 1},
		{Name: "C", MrNo: 2},
	})
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, []string{"MR Number 1 already exists."}, res.Errors)
}

func TestDelete_RemovesAccountThenRow(t *testing.T) {
	svc, repo, accounts := newService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, memberDTO.CreateMemberRequest{Name: "Head", PmjNo: ptr(9), MrNo: 90})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, []uuid.UUID{*m.AuthID}, accounts.deleted)

	_, err = repo.FindByID(ctx, m.ID)
	assert.Error(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), ErrNotFound)
}

func TestConvert_DependentBecomesHead(t *testing.T) {
	svc, repo, accounts := newService(t)
	ctx := context.Background()

	dep, err := svc.Create(ctx, memberDTO.CreateMemberRequest{Name: "Son", MrNo: 91, HeadPmjNo: ptr(9)})
	require.NoError(t, err)

	require.NoError(t, svc.Convert(ctx, dep.ID, memberDTO.ConvertMemberRequest{MrNo: 91, NewPmjNo: 19}))
	assert.Equal(t, "00190091", accounts.created["19@pmjmasjid.com"])

	got, err := repo.FindByID(ctx, dep.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PmjNo)
	assert.Equal(t, int64(19), *got.PmjNo)
	assert.Nil(t, got.HeadPmjNo)
	require.NotNil(t, got.AuthID)

	assert.ErrorIs(t, svc.Convert(ctx, dep.ID, memberDTO.ConvertMemberRequest{MrNo: 91, NewPmjNo: 20}), ErrAlreadyHead)
}

func TestConvert_RollsBackAccountOnDuplicatePmj(t *testing.T) {
	svc, _, accounts := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, memberDTO.CreateMemberRequest{Name: "Head", PmjNo: ptr(19), MrNo: 1})
	require.NoError(t, err)
	dep, err := svc.Create(ctx, memberDTO.CreateMemberRequest{Name: "Son", MrNo: 2, HeadPmjNo: ptr(19)})
	require.NoError(t, err)

	err = svc.Convert(ctx, dep.ID, memberDTO.ConvertMemberRequest{MrNo: 2, NewPmjNo: 19})
	assert.ErrorIs(t, err, ErrDuplicatePmj)
	require.Len(t, accounts.ids, 2)
	assert.Equal(t, []uuid.UUID{accounts.ids[1]}, accounts.deleted)
}

func TestParseCSV(t *testing.T) {
	in := "\ufeffName,MR_NO,pmj_no,head_pmj_no,annual_subs,status\n" +
		"Abdul,555,100,,1250,active\n" +
		"Aisha,556,,100,NA,\n" +
		",,,,,\n" +
		"Broken,abc,,,,\n"

	rows, issues, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Abdul", rows[0].Name)
	assert.Equal(t, int64(100), *rows[0].PmjNo)
	assert.Nil(t, rows[0].HeadPmjNo)
	assert.Equal(t, int64(100), *rows[1].HeadPmjNo)
	assert.Equal(t, "NA", rows[1].AnnualSubs)
	assert.Equal(t, []string{`Row 5: invalid mr_no "abc"`}, issues)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestExportThenParseXLSX(t *testing.T) {
	father := "Ibrahim"
	data, err := ExportXLSX([]memberModel.Member{
		{Name: "Abdul", FatherName: &father, PmjNo: ptr(100), MrNo: 555, AnnualSubs: "1250", Arrears: "0", Status: "active"},
		{Name: "Aisha", HeadPmjNo: ptr(100), MrNo: 556, AnnualSubs: "200", Arrears: "NA", Status: "active"},
	})
	require.NoError(t, err)

	rows, issues, err := ParseXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ibrahim", rows[0].FatherName)
	assert.Equal(t, int64(555), rows[0].MrNo)
	assert.Equal(t, int64(100), *rows[1].HeadPmjNo)
	assert.Equal(t, "NA", rows[1].Arrears)
}

func sptr(s string) *string { return &s }

func TestUpdate_EditsLedgerFields(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, memberDTO.CreateMemberRequest{
		Name: "Fathima", FatherName: "Yusuf", HeadPmjNo: ptr(100), MrNo: 7, AnnualSubs: "200",
	})
	require.NoError(t, err)

	got, err := svc.Update(ctx, m.ID, memberDTO.UpdateMemberRequest{
		Name:       sptr(" Fathima Beevi "),
		FatherName: sptr(""),
		Arrears:    sptr("NA"),
		Status:     sptr(memberModel.StatusInactive),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fathima Beevi", got.Name)
	assert.Nil(t, got.FatherName)
	assert.Equal(t, "NA", got.Arrears)
	assert.Equal(t, "200", got.AnnualSubs)
	assert.Equal(t, memberModel.StatusInactive, got.Status)
	require.NotNil(t, got.HeadPmjNo)
	assert.Equal(t, int64(100), *got.HeadPmjNo)

	stored, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, memberModel.StatusInactive, stored.Status)
}

func TestUpdate_UnknownMember(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Update(context.Background(), uuid.New(), memberDTO.UpdateMemberRequest{Name: sptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_EmptyRequest(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Update(context.Background(), uuid.New(), memberDTO.UpdateMemberRequest{})
	assert.ErrorIs(t, err, ErrNoChanges)
}
