package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/course-api/internal/middlewares"
	"github.com/sbilibin2017/course-api/internal/models"
	"github.com/sbilibin2017/course-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCaller = &models.UserDB{UserID: 5, FirstName: "Ann", LastName: "Lee", EmailAddress: "ann@x.com"}

func strPtr(s string) *string { return &s }

func sampleCourse() models.CourseWithOwnerDB {
	return models.CourseWithOwnerDB{
		CourseDB: models.CourseDB{
			CourseID:      1,
			Title:         "Intro",
			Description:   "desc",
			EstimatedTime: strPtr("2 hours"),
			UserID:        5,
		},
		Owner: models.UserDB{
			UserID:       5,
			FirstName:    "Ann",
			LastName:     "Lee",
			EmailAddress: "ann@x.com",
			PasswordHash: "$2a$10$hash",
		},
	}
}

const sampleCourseJSON = `{
	"id":1,"title":"Intro","description":"desc","estimatedTime":"2 hours","materialsNeeded":null,"userId":5,
	"user":{"id":5,"firstName":"Ann","lastName":"Lee","emailAddress":"ann@x.com"}
}`

// newCourseRequest builds a request carrying the chi {id} param and, optionally, an authenticated user.
func newCourseRequest(method, id, body string, user *models.UserDB) *http.Request {
	req := httptest.NewRequest(method, "/api/courses/"+id, bytes.NewBufferString(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if user != nil {
		ctx = middlewares.SetUserToContext(ctx, user)
	}
	return req.WithContext(ctx)
}

func TestListCoursesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		courses      []models.CourseWithOwnerDB
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "courses",
			courses:      []models.CourseWithOwnerDB{sampleCourse()},
			expectedCode: http.StatusOK,
			expectedBody: "[" + sampleCourseJSON + "]",
		},
		{
			name:         "empty",
			courses:      nil,
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "store failure",
			err:          errors.New("db down"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":{"message":"db down"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockCourseLister(ctrl)
			mockSvc.EXPECT().List(gomock.Any()).Return(tt.courses, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
			rr := httptest.NewRecorder()
			NewListCoursesHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			assert.NotContains(t, rr.Body.String(), "hash")
		})
	}
}

func TestGetCourseHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		id           string
		mockSetup    func(m *MockCourseGetter)
		expectedCode int
		expectedBody string
	}{
		{
			name: "found",
			id:   "1",
			mockSetup: func(m *MockCourseGetter) {
				c := sampleCourse()
				m.EXPECT().Get(gomock.Any(), int64(1)).Return(&c, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: sampleCourseJSON,
		},
		{
			name: "unknown id answers Course not found",
			id:   "999",
			mockSetup: func(m *MockCourseGetter) {
				m.EXPECT().Get(gomock.Any(), int64(999)).Return(nil, services.ErrCourseNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Course not found"}`,
		},
		{
			name:         "non numeric id",
			id:           "abc",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Course not found"}`,
		},
		{
			name:         "zero id",
			id:           "0",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Course not found"}`,
		},
		{
			name: "store failure",
			id:   "2",
			mockSetup: func(m *MockCourseGetter) {
				m.EXPECT().Get(gomock.Any(), int64(2)).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":{"message":"db down"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockCourseGetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := httptest.NewRecorder()
			NewGetCourseHandler(mockSvc)(rr, newCourseRequest(http.MethodGet, tt.id, "", nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestCreateCourseHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		body             string
		user             *models.UserDB
		mockSetup        func(m *MockCourseCreator)
		expectedCode     int
		expectedBody     string
		expectedLocation string
	}{
		{
			name: "owner defaults to caller",
			body: `{"title":"Intro","description":"desc","materialsNeeded":"glue"}`,
			user: testCaller,
			mockSetup: func(m *MockCourseCreator) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *models.CourseDB) (int64, error) {
						assert.Equal(t, int64(5), c.UserID)
						assert.Equal(t, "Intro", c.Title)
						assert.Nil(t, c.EstimatedTime)
						require.NotNil(t, c.MaterialsNeeded)
						assert.Equal(t, "glue", *c.MaterialsNeeded)
						return 17, nil
					})
			},
			expectedCode:     http.StatusCreated,
			expectedLocation: "/api/courses/17",
		},
		{
			name: "explicit owner",
			body: `{"title":"Intro","description":"desc","userId":8}`,
			user: testCaller,
			mockSetup: func(m *MockCourseCreator) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *models.CourseDB) (int64, error) {
						assert.Equal(t, int64(8), c.UserID)
						return 18, nil
					})
			},
			expectedCode:     http.StatusCreated,
			expectedLocation: "/api/courses/18",
		},
		{
			name:         "missing fields",
			body:         `{}`,
			user:         testCaller,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"errors":["Please provide a value for \"title\"","Please provide a value for \"description\""]}`,
		},
		{
			name:         "missing description",
			body:         `{"title":"Intro"}`,
			user:         testCaller,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"errors":["Please provide a value for \"description\""]}`,
		},
		{
			name:         "mixed types report each field",
			body:         `{"title":42,"description":"","estimatedTime":{"hours":2},"userId":"abc"}`,
			user:         testCaller,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"errors":[
				"Please provide a value for \"description\"",
				"Please provide a valid value for \"estimatedTime\"",
				"Please provide a valid value for \"userId\""
			]}`,
		},
		{
			name: "numeric values are accepted",
			body: `{"title":42,"description":"desc","estimatedTime":3,"userId":"8"}`,
			user: testCaller,
			mockSetup: func(m *MockCourseCreator) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *models.CourseDB) (int64, error) {
						assert.Equal(t, "42", c.Title)
						require.NotNil(t, c.EstimatedTime)
						assert.Equal(t, "3", *c.EstimatedTime)
						assert.Equal(t, int64(8), c.UserID)
						return 19, nil
					})
			},
			expectedCode:     http.StatusCreated,
			expectedLocation: "/api/courses/19",
		},
		{
			name:         "fractional owner id",
			body:         `{"title":"Intro","description":"desc","userId":1.5}`,
			user:         testCaller,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"errors":["Please provide a valid value for \"userId\""]}`,
		},
		{
			name: "unknown owner",
			body: `{"title":"Intro","description":"desc","userId":999}`,
			user: testCaller,
			mockSetup: func(m *MockCourseCreator) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), services.ErrOwnerNotFound)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"errors":["Course owner does not exist"]}`,
		},
		{
			name:         "unauthenticated",
			body:         `{"title":"Intro","description":"desc"}`,
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"Access Denied"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockCourseCreator(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/courses", bytes.NewBufferString(tt.body))
			if tt.user != nil {
				req = req.WithContext(middlewares.SetUserToContext(req.Context(), tt.user))
			}
			rr := httptest.NewRecorder()
			NewCreateCourseHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			if tt.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestUpdateCourseHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	valid := `{"title":"New","description":"changed","estimatedTime":"3 hours","userId":99}`

	tests := []struct {
		name         string
		id           string
		body         string
		mockSetup    func(m *MockCourseUpdater)
		expectedCode int
		expectedBody string
	}{
		{
			name: "owner updates",
			id:   "3",
			body: valid,
			mockSetup: func(m *MockCourseUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, c *models.CourseDB) error {
						assert.Equal(t, int64(3), c.CourseID)
						assert.Equal(t, "New", c.Title)
						assert.Equal(t, int64(0), c.UserID)
						require.NotNil(t, c.EstimatedTime)
						assert.Equal(t, "3 hours", *c.EstimatedTime)
						return nil
					})
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "validation",
			id:           "3",
			body:         `{"title":"","description":"changed"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"errors":["Please provide a value for \"title\""]}`,
		},
		{
			name:         "mixed types",
			id:           "3",
			body:         `{"title":["New"],"description":"changed","materialsNeeded":[]}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"errors":["Please provide a value for \"title\"","Please provide a valid value for \"materialsNeeded\""]}`,
		},
		{
			name: "not found",
			id:   "3",
			body: valid,
			mockSetup: func(m *MockCourseUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).Return(services.ErrCourseNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Course not found"}`,
		},
		{
			name: "not the owner",
			id:   "3",
			body: valid,
			mockSetup: func(m *MockCourseUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).Return(services.ErrNotCourseOwner)
			},
			expectedCode: http.StatusForbidden,
			expectedBody: `{"message":"Only the course owner can update this course"}`,
		},
		{
			name:         "non numeric id",
			id:           "x1",
			body:         valid,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Course not found"}`,
		},
		{
			name: "store failure",
			id:   "3",
			body: valid,
			mockSetup: func(m *MockCourseUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).Return(errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":{"message":"db down"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockCourseUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := httptest.NewRecorder()
			NewUpdateCourseHandler(mockSvc)(rr, newCourseRequest(http.MethodPut, tt.id, tt.body, testCaller))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestDeleteCourseHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		id           string
		svcErr       error
		callsSvc     bool
		expectedCode int
		expectedBody string
	}{
		{name: "owner deletes", id: "3", callsSvc: true, expectedCode: http.StatusNoContent},
		{
			name: "not found", id: "3", callsSvc: true, svcErr: services.ErrCourseNotFound,
			expectedCode: http.StatusNotFound, expectedBody: `{"message":"Course not found"}`,
		},
		{
			name: "not the owner", id: "3", callsSvc: true, svcErr: services.ErrNotCourseOwner,
			expectedCode: http.StatusForbidden, expectedBody: `{"message":"Only the course owner can delete this course"}`,
		},
		{
			name: "non numeric id", id: "abc",
			expectedCode: http.StatusNotFound, expectedBody: `{"message":"Course not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockCourseDeleter(ctrl)
			if tt.callsSvc {
				mockSvc.EXPECT().Delete(gomock.Any(), int64(5), int64(3)).Return(tt.svcErr)
			}

			rr := httptest.NewRecorder()
			NewDeleteCourseHandler(mockSvc)(rr, newCourseRequest(http.MethodDelete, tt.id, "", testCaller))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestDeleteCourseHandler_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rr := httptest.NewRecorder()
	NewDeleteCourseHandler(NewMockCourseDeleter(ctrl))(rr, newCourseRequest(http.MethodDelete, "3", "", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
