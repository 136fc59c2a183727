package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"classcast/internal/entity"
	"classcast/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAdminUseCase is a mock implementation of AdminUseCase
type MockAdminUseCase struct {
	mock.Mock
}

func (m *MockAdminUseCase) ListUsers(requesterRole entity.UserRole, limit, offset int) ([]*entity.User, error) {
	args := m.Called(requesterRole, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockAdminUseCase) DeleteUser(requesterRole entity.UserRole, userID string) error {
	args := m.Called(requesterRole, userID)
	return args.Error(0)
}

func (m *MockAdminUseCase) ChangeUserRole(requesterRole entity.UserRole, userID string, newRole entity.UserRole) (*entity.User, error) {
	args := m.Called(requesterRole, userID, newRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAdminUseCase) Stats(requesterRole entity.UserRole) (*usecase.AdminStats, error) {
	args := m.Called(requesterRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AdminStats), args.Error(1)
}

var _ usecase.AdminUseCase = (*MockAdminUseCase)(nil)

func asTeacher(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "teacher-1")
		c.Set("user_role", "teacher")
		handler(c)
	}
}

func TestListUsersHandler_Success(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/users", asTeacher(handler.ListUsers))

	mockUsers := []*entity.User{
		{ID: "u1", Username: "alice", Role: entity.RoleStudent},
		{ID: "u2", Username: "bob", Role: entity.RoleTeacher},
	}
	mockUseCase.On("ListUsers", entity.RoleTeacher, 50, 0).Return(mockUsers, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])

	mockUseCase.AssertExpectations(t)
}

func TestListUsersHandler_Forbidden(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/users", func(c *gin.Context) {
		c.Set("user_role", "student")
		handler.ListUsers(c)
	})

	mockUseCase.On("ListUsers", entity.RoleStudent, 50, 0).Return(nil, entity.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteUserHandler_Success(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/admin/users/:id", asTeacher(handler.DeleteUser))

	mockUseCase.On("DeleteUser", entity.RoleTeacher, "u1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/users/u1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteUserHandler_SuperuserProtected(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/admin/users/:id", asTeacher(handler.DeleteUser))

	mockUseCase.On("DeleteUser", entity.RoleTeacher, "root").Return(entity.ErrProtectedUser)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/users/root", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteUserHandler_NotFound(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/admin/users/:id", asTeacher(handler.DeleteUser))

	mockUseCase.On("DeleteUser", entity.RoleTeacher, "ghost").Return(entity.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/users/ghost", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestStatsHandler_Success(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/stats", asTeacher(handler.Stats))

	mockUseCase.On("Stats", entity.RoleTeacher).Return(&usecase.AdminStats{Users: 12, Videos: 34}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/stats", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response usecase.AdminStats
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(12), response.Users)
	assert.Equal(t, int64(34), response.Videos)

	mockUseCase.AssertExpectations(t)
}

func TestStatsHandler_Forbidden(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/stats", func(c *gin.Context) {
		c.Set("user_role", "student")
		handler.Stats(c)
	})

	mockUseCase.On("Stats", entity.RoleStudent).Return(nil, entity.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/stats", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestChangeUserRoleHandler_Success(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.PUT("/admin/users/:id/role", asTeacher(handler.ChangeUserRole))

	mockUseCase.On("ChangeUserRole", entity.RoleTeacher, "u1", entity.RoleTeacher).Return(&entity.User{
		ID:       "u1",
		Username: "alice",
		Role:     entity.RoleTeacher,
	}, nil)

	body := `{"role":"teacher"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/users/u1/role", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.User
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, entity.RoleTeacher, response.Role)

	mockUseCase.AssertExpectations(t)
}

func TestChangeUserRoleHandler_RejectsUnknownRole(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.PUT("/admin/users/:id/role", asTeacher(handler.ChangeUserRole))

	body := `{"role":"admin"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/users/u1/role", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "ChangeUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeUserRoleHandler_SuperuserProtected(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase)

	router := setupTestRouter()
	router.PUT("/admin/users/:id/role", asTeacher(handler.ChangeUserRole))

	mockUseCase.On("ChangeUserRole", entity.RoleTeacher, "root", entity.RoleStudent).Return(nil, entity.ErrProtectedUser)

	body := `{"role":"student"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/users/root/role", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}
