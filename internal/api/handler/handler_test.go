package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/service"
	"brian-crafts/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	requestOTPErr error
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
}

func (m *mockAuthService) RequestOTP(_ context.Context, _ *dto.OTPRequest) error {
	return m.requestOTPErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	signResult    *dto.AttendanceResponse
	signErr       error
	approveResult *dto.AttendanceResponse
	approveErr    error
	listResult    []dto.AttendanceResponse
	listErr       error
}

func (m *mockAttendanceService) Sign(_ context.Context, _, _ string, _ *dto.SignRequest) (*dto.AttendanceResponse, error) {
	return m.signResult, m.signErr
}
func (m *mockAttendanceService) Approve(_ context.Context, _, _ string, _ *dto.ApproveRequest) (*dto.AttendanceResponse, error) {
	return m.approveResult, m.approveErr
}
func (m *mockAttendanceService) ListToday(_ context.Context, _ string) ([]dto.AttendanceResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportCSV(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportPDF(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("jti", "test-jti")
	c.Set("token_expires_at", time.Now().Add(12*time.Hour))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_RequestOTP_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/otp", jsonBody(dto.OTPRequest{
		Email: "worker@example.com",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/otp", h.RequestOTP)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_RequestOTP_MissingIdentifier(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{requestOTPErr: service.ErrMissingIdentifier})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/otp", jsonBody(dto.OTPRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/otp", h.RequestOTP)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			TokenType:    "bearer",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email: "worker@example.com",
		OTP:   "123456",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidOTP(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidOTP})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email: "worker@example.com",
		OTP:   "000000",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		refreshResult: &dto.TokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			TokenType:    "bearer",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "old-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidRefreshToken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_Sign_Success(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{
		signResult: &dto.AttendanceResponse{
			AttendanceID: "att-001",
			UserID:       "test-user-id",
			Date:         "2026-08-10",
			Signed:       true,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/sign", jsonBody(dto.SignRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/sign", func(c *gin.Context) {
		setAuth(c)
		h.Sign(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAttendanceHandler_Sign_AlreadySigned(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{signErr: service.ErrAlreadySigned})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/sign", jsonBody(dto.SignRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/sign", func(c *gin.Context) {
		setAuth(c)
		h.Sign(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestAttendanceHandler_Sign_NoPermission(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{signErr: service.ErrNoPermission})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/sign", jsonBody(dto.SignRequest{
		UserID: "11111111-1111-1111-1111-111111111111",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/sign", func(c *gin.Context) {
		setAuth(c)
		h.Sign(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAttendanceHandler_Sign_Unauthenticated(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/sign", jsonBody(dto.SignRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/sign", h.Sign)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAttendanceHandler_Approve_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrAttendanceNotFound, 404, 12002},
		{"AlreadyApproved", service.ErrAlreadyApproved, 400, 12003},
		{"NoPermission", service.ErrNoPermission, 403, 10003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAttendanceHandler(&mockAttendanceService{approveErr: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/attendance/approve", jsonBody(dto.ApproveRequest{
				AttendanceID: "11111111-1111-1111-1111-111111111111",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/attendance/approve", func(c *gin.Context) {
				setAuth(c)
				h.Approve(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestAttendanceHandler_Approve_BadJSON(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/approve", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/approve", func(c *gin.Context) {
		setAuth(c)
		h.Approve(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_CSV_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("attendance_id,user_id\n"),
		filename: "attendance_20260810.csv",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance.csv", nil)

	r := gin.New()
	r.GET("/export/attendance.csv", func(c *gin.Context) {
		setAuth(c)
		h.CSV(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_NoPermission(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrNoPermission})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance.pdf", nil)

	r := gin.New()
	r.GET("/export/attendance.pdf", func(c *gin.Context) {
		setAuth(c)
		h.PDF(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestExportHandler_GenerateFail(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportGenerateFail})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance.xlsx", nil)

	r := gin.New()
	r.GET("/export/attendance.xlsx", func(c *gin.Context) {
		setAuth(c)
		h.XLSX(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
