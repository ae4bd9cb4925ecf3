package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campustrack/internal/app/importer"
	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/pkg/apperrors"
	"github.com/yigit/campustrack/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type recordingImporter struct {
	ctx     context.Context
	req     importer.Request
	dryRuns int
	imports int
	err     error
}

func (r *recordingImporter) Import(ctx context.Context, req importer.Request) (*importer.Result, error) {
	r.ctx, r.req = ctx, req
	r.imports++
	return &importer.Result{}, r.err
}

func (r *recordingImporter) DryRun(ctx context.Context, req importer.Request) (*importer.Result, error) {
	r.ctx, r.req = ctx, req
	r.dryRuns++
	return &importer.Result{DryRun: true}, r.err
}

type memoryArchive struct {
	keys []string
	err  error
}

func (m *memoryArchive) Store(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	return "s3://bucket/" + key, nil
}

func TestImportServiceDetachesCancellation(t *testing.T) {
	im := &recordingImporter{}
	svc := NewImportService(im, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Import(ctx, Upload{Filename: "roster.csv", Data: []byte("name\n")})
	require.NoError(t, err)
	assert.NoError(t, im.ctx.Err(), "a disconnected client must not cancel the batch")
	assert.Equal(t, importer.FormatCSV, im.req.Format)
	assert.Empty(t, im.req.SourceFile)
}

func TestImportServiceArchivesUpload(t *testing.T) {
	im := &recordingImporter{}
	archive := &memoryArchive{}
	svc := NewImportService(im, archive, zerolog.Nop())

	_, err := svc.Import(context.Background(), Upload{Filename: "cs.xlsx", Data: []byte("PK")})
	require.NoError(t, err)

	require.Len(t, archive.keys, 1)
	assert.Regexp(t, `^rosters/\d{4}/\d{2}/\d{2}/.+-cs\.xlsx$`, archive.keys[0])
	assert.Equal(t, "s3://bucket/"+archive.keys[0], im.req.SourceFile)
	assert.Equal(t, importer.FormatXLSX, im.req.Format)
}

func TestImportServiceArchiveFailureDoesNotFailBatch(t *testing.T) {
	var logs bytes.Buffer
	im := &recordingImporter{}
	svc := NewImportService(im, &memoryArchive{err: errors.New("bucket gone")}, zerolog.New(&logs))

	_, err := svc.Import(context.Background(), Upload{Filename: "cs.csv", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, 1, im.imports)
	assert.Empty(t, im.req.SourceFile)
	assert.Contains(t, logs.String(), "bucket gone")
}

func TestImportServiceDryRunSkipsArchive(t *testing.T) {
	im := &recordingImporter{}
	archive := &memoryArchive{}
	svc := NewImportService(im, archive, zerolog.Nop())

	res, err := svc.Import(context.Background(), Upload{Filename: "cs.csv", Data: []byte("x"), DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, 1, im.dryRuns)
	assert.Zero(t, im.imports)
	assert.Empty(t, archive.keys)
}

func TestImportServicePropagatesParseError(t *testing.T) {
	parseErr := &importer.ParseError{Err: errors.New("bad utf-8")}
	svc := NewImportService(&recordingImporter{err: parseErr}, nil, zerolog.Nop())

	_, err := svc.Import(context.Background(), Upload{Filename: "x.csv"})
	var pe *importer.ParseError
	assert.ErrorAs(t, err, &pe)
}

type memoryUsers struct {
	users   map[int64]*models.User
	filter  models.UserFilter
	updated map[int64]string
}

func (m *memoryUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUsers) ListUsers(_ context.Context, filter models.UserFilter) ([]*models.User, int64, error) {
	m.filter = filter
	out := make([]*models.User, 0)
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id int64, hashed string) error {
	if m.updated == nil {
		m.updated = make(map[int64]string)
	}
	m.updated[id] = hashed
	return nil
}

func strPtr(s string) *string { return &s }

func TestResetPasswordRestoresNaturalKey(t *testing.T) {
	store := &memoryUsers{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleStudent, RollNo: strPtr("101")},
		2: {ID: 2, Role: models.RoleTeacher, TeacherID: strPtr("T1")},
	}}
	var logs bytes.Buffer
	svc := NewUserService(store, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.New(&logs))

	for id, want := range map[int64]string{1: "101", 2: "T1"} {
		resp, err := svc.ResetPassword(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, resp.DefaultPassword)
		assert.True(t, auth.CheckPassword(store.updated[id], want))
		assert.NotContains(t, logs.String(), `"`+want+`"`, "the plaintext default is never logged")
	}
}

func TestResetPasswordErrors(t *testing.T) {
	store := &memoryUsers{users: map[int64]*models.User{3: {ID: 3, Role: models.RoleStudent}}}
	svc := NewUserService(store, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())

	_, err := svc.ResetPassword(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.ResetPassword(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = svc.ResetPassword(context.Background(), 3)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestListUsersBuildsFilter(t *testing.T) {
	store := &memoryUsers{users: map[int64]*models.User{}}
	svc := NewUserService(store, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())

	_, page, err := svc.ListUsers(context.Background(), "Teacher", "CS", 3, 20)
	require.NoError(t, err)
	assert.Equal(t, models.UserFilter{Role: models.RoleTeacher, Department: "CS", Offset: 40, Limit: 20}, store.filter)
	assert.Equal(t, 20, page.PageSize)

	_, _, err = svc.ListUsers(context.Background(), "admin", "", 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

type memorySummaryList struct {
	filter models.SummaryFilter
}

func (m *memorySummaryList) ListSummaries(_ context.Context, filter models.SummaryFilter) ([]*models.UploadSummary, int64, error) {
	m.filter = filter
	return []*models.UploadSummary{{ID: 1, Department: "CS", UploadedAt: time.Now()}}, 11, nil
}

func TestListSummaries(t *testing.T) {
	store := &memorySummaryList{}
	svc := NewSummaryService(store)

	summaries, page, err := svc.ListSummaries(context.Background(), " CS ", 2, 10)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, models.SummaryFilter{Department: "CS", Offset: 10, Limit: 10}, store.filter)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
}
