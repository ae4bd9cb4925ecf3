package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campustrack/internal/app/importer"
	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/app/models/dto"
	"github.com/yigit/campustrack/internal/app/services"
	"github.com/yigit/campustrack/internal/middleware"
	"github.com/yigit/campustrack/internal/pkg/apperrors"
	"github.com/yigit/campustrack/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type accountsTable struct {
	mu    sync.Mutex
	users []*models.User
}

func (a *accountsTable) NaturalKeyExists(_ context.Context, role models.Role, key string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, u := range a.users {
		if u.Role == role && u.NaturalKey() == key {
			return true, nil
		}
	}
	return false, nil
}

func (a *accountsTable) CreateUser(_ context.Context, user *models.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	user.ID = int64(len(a.users) + 1)
	a.users = append(a.users, user)
	return nil
}

type summariesTable struct {
	rows []*models.UploadSummary
}

func (s *summariesTable) CreateSummary(_ context.Context, summary *models.UploadSummary) error {
	summary.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, summary)
	return nil
}

func newImportRouter(t *testing.T, maxBytes int64) (*gin.Engine, *accountsTable, *summariesTable) {
	t.Helper()
	accounts := &accountsTable{}
	summaries := &summariesTable{}
	im := importer.New(accounts, summaries, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())
	ctrl := NewImportController(services.NewImportService(im, nil, zerolog.Nop()))

	r := gin.New()
	r.POST("/imports/users", middleware.UploadLimit(maxBytes), ctrl.ImportUsers)
	return r, accounts, summaries
}

func multipartRequest(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "no file here"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

const scenarioCSV = "name,rollNo,teacherId,email,department,role\n" +
	"A,101,,a@x.com,CS,student\n" +
	"B,,T1,b@x.com,CS,teacher\n" +
	"C,,,,,unknown\n"

func TestImportUsersScenario(t *testing.T) {
	router, accounts, summaries := newImportRouter(t, 2<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/imports/users", RosterFileField, "roster.csv", []byte(scenarioCSV)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.MessageImportCompleted, resp.Message)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Success)
	assert.Len(t, resp.SuccessData, 2)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "C", resp.Errors[0].Row["name"])
	assert.Equal(t, `Unknown role: "unknown"`, resp.Errors[0].Error)

	require.Len(t, accounts.users, 2)
	assert.True(t, auth.CheckPassword(accounts.users[0].Password, "101"))
	assert.True(t, auth.CheckPassword(accounts.users[1].Password, "T1"))

	require.Len(t, summaries.rows, 1)
	assert.Equal(t, "CS", summaries.rows[0].Department)
	require.NotNil(t, resp.SummaryID)
	assert.Equal(t, summaries.rows[0].ID, *resp.SummaryID)
}

func TestImportUsersDryRun(t *testing.T) {
	router, accounts, summaries := newImportRouter(t, 2<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/imports/users?dryRun=true", RosterFileField, "roster.csv", []byte(scenarioCSV)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.DryRun)
	assert.Equal(t, 2, resp.Success)
	assert.Empty(t, accounts.users)
	assert.Empty(t, summaries.rows)
}

func TestImportUsersNoFile(t *testing.T) {
	router, _, summaries := newImportRouter(t, 2<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/imports/users", "", "", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"No file uploaded"}`, w.Body.String())
	assert.Empty(t, summaries.rows)
}

func TestImportUsersUnreadableFile(t *testing.T) {
	router, accounts, summaries := newImportRouter(t, 2<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/imports/users", RosterFileField, "roster.csv", []byte{0xff, 0xfe, 0x00, 'a'}))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.ImportErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.MessageParseFailed, resp.Message)
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, accounts.users)
	assert.Empty(t, summaries.rows, "no summary is written for an unreadable file")
}

func TestImportUsersTooLarge(t *testing.T) {
	router, _, _ := newImportRouter(t, 64)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/imports/users", RosterFileField, "roster.csv", []byte(strings.Repeat(scenarioCSV, 10))))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"message"`)
}

type stubUserService struct {
	role, department string
	page, size       int
	resetErr         error
}

func (s *stubUserService) ListUsers(_ context.Context, role, department string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	s.role, s.department, s.page, s.size = role, department, page, size
	rollNo := "101"
	return []*models.User{{ID: 1, Name: "A", Role: models.RoleStudent, RollNo: &rollNo, Password: "hash"}},
		dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 1}, nil
}

func (s *stubUserService) ResetPassword(_ context.Context, id int64) (*dto.ResetPasswordResponse, error) {
	if s.resetErr != nil {
		return nil, s.resetErr
	}
	return &dto.ResetPasswordResponse{UserID: id, Role: "student", DefaultPassword: "101"}, nil
}

func newUserRouter(svc services.UserService) *gin.Engine {
	ctrl := NewUserController(svc)
	r := gin.New()
	r.GET("/users", ctrl.ListUsers)
	r.POST("/users/:id/reset-password", ctrl.ResetPassword)
	return r
}

func TestListUsers(t *testing.T) {
	svc := &stubUserService{}
	router := newUserRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?role=student&department=CS&page=2&size=5", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "student", svc.role)
	assert.Equal(t, "CS", svc.department)
	assert.Equal(t, 2, svc.page)
	assert.Equal(t, 5, svc.size)
	assert.NotContains(t, w.Body.String(), "hash", "password hashes are never returned")
	assert.Contains(t, w.Body.String(), `"rollNo":"101"`)
	assert.NotContains(t, w.Body.String(), "teacherId")
}

func TestListUsersRejectsBadQuery(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	for _, target := range []string{"/users?role=admin", "/users?size=1000", "/users?page=0", "/users?size=0", "/users?page=-1"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestListUsersWithoutPaging(t *testing.T) {
	svc := &stubUserService{}
	w := httptest.NewRecorder()
	newUserRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Zero(t, svc.page, "absent page is left to the service defaults")
	assert.Zero(t, svc.size)
}

func TestResetPassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		newUserRouter(&stubUserService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/7/reset-password", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"defaultPassword":"101"`)
		assert.Contains(t, w.Body.String(), `"userId":7`)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		newUserRouter(&stubUserService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/abc/reset-password", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		newUserRouter(&stubUserService{resetErr: apperrors.ErrUserNotFound}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/9/reset-password", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		newUserRouter(&stubUserService{resetErr: errors.New("connection reset")}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/9/reset-password", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

type stubSummaryService struct {
	department string
	page, size int
}

func (s *stubSummaryService) ListSummaries(_ context.Context, department string, page, size int) ([]*models.UploadSummary, dto.PaginationInfo, error) {
	s.department, s.page, s.size = department, page, size
	return []*models.UploadSummary{{ID: 4, Department: "CS", UploadedCount: 7, ErrorCount: 3}}, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1}, nil
}

func TestListSummaries(t *testing.T) {
	svc := &stubSummaryService{}
	ctrl := NewSummaryController(svc)
	r := gin.New()
	r.GET("/imports/summaries", ctrl.ListSummaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/imports/summaries?department=CS&page=3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CS", svc.department)
	assert.Equal(t, 3, svc.page)
	assert.Zero(t, svc.size)
	assert.Contains(t, w.Body.String(), `"uploadedCount":7`)
	assert.Contains(t, w.Body.String(), `"errorCount":3`)
}

func TestListSummariesRejectsZeroPage(t *testing.T) {
	ctrl := NewSummaryController(&stubSummaryService{})
	r := gin.New()
	r.GET("/imports/summaries", ctrl.ListSummaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/imports/summaries?page=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
