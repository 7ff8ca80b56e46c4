// Package integration provides end-to-end integration tests for the
// attendance API. Tests run against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/attend/internal/app"
	attendanceDTO "github.com/clinichq/attend/internal/attendance/http/dto"
	"github.com/clinichq/attend/internal/config"
	staffDTO "github.com/clinichq/attend/internal/staff/http/dto"
	"github.com/clinichq/attend/internal/testutil"
	tokenDTO "github.com/clinichq/attend/internal/token/http/dto"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	adminKey  string
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	asAdmin bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if asAdmin {
		req.Header.Set("X-Admin-Key", ctx.adminKey)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// hashAdminKey produces the argon2id hash stored in the configuration.
func hashAdminKey(key string) string {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		panic(fmt.Sprintf("failed to create hasher: %v", err))
	}
	hash, err := hasher.Hash([]byte(key))
	if err != nil {
		panic(fmt.Sprintf("failed to hash admin key: %v", err))
	}
	return hash
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	adminKey := "integration-test-admin-key-" + uuid.NewString()

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		ClinicTimezone:       "UTC",
		KioskTokenTTL:        time.Minute,
		ReentryTokenTTL:      5 * time.Minute,
		KioskTokenSingleUse:  false,
		TokenRetention:       time.Hour,
		AdminLockoutExempt:   true,
		AdminAPIKeyHash:      hashAdminKey(adminKey),
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil")

	testServer := httptest.NewServer(handler)

	t.Logf("Integration test setup complete for %s", dbDriver)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		adminKey:  adminKey,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

// TestIntegration_Health_BasicChecks validates infrastructure health and
// readiness endpoints against both PostgreSQL and MySQL.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "ready", response["status"])
			})

			t.Run("03_AdminRequiresKey", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/staff", nil, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		})
	}
}

// TestIntegration_Attendance_CompleteFlow exercises the full working day:
// staff registration, kiosk token issuance, scans with anti-fraud checks,
// sign-out and re-entry, and closing the day with auto-checkout.
func TestIntegration_Attendance_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var (
				staffAID      string
				staffBID      string
				checkInToken  tokenDTO.TokenResponse
				checkOutToken tokenDTO.TokenResponse
				reentryToken  tokenDTO.TokenResponse
				fingerprintA  = "device-fp-aaaa-1111"
				fingerprintB  = "device-fp-bbbb-2222"
				today         = time.Now().UTC().Format("2006-01-02")
			)

			// [1/16] Register two staff members
			t.Run("01_CreateStaff", func(t *testing.T) {
				requestBody := staffDTO.CreateStaffRequest{
					DisplayName: "Integration Assistant",
					Email:       "assistant@clinic.example",
					Role:        "assistant",
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/staff", requestBody, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response staffDTO.StaffResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotEmpty(t, response.ID)
				assert.Equal(t, "assistant", response.Role)
				assert.False(t, response.LockedOut)
				staffAID = response.ID

				requestBody = staffDTO.CreateStaffRequest{
					DisplayName: "Integration Physician",
					Role:        "physician",
				}

				resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/staff", requestBody, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				err = json.Unmarshal(body, &response)
				require.NoError(t, err)
				staffBID = response.ID
			})

			// [2/16] List staff
			t.Run("02_ListStaff", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/staff", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response staffDTO.ListStaffResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, len(response.Data), 2)
			})

			// [3/16] Issue a check-in kiosk token
			t.Run("03_IssueCheckInToken", func(t *testing.T) {
				requestBody := tokenDTO.IssueKioskTokenRequest{Direction: "check_in"}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/kiosk/tokens", requestBody, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				err := json.Unmarshal(body, &checkInToken)
				require.NoError(t, err)
				assert.NotEmpty(t, checkInToken.Value)
				assert.Len(t, checkInToken.FallbackCode, 6)
				assert.Equal(t, "kiosk_checkin", checkInToken.Kind)
				assert.False(t, checkInToken.ExpiresAt.IsZero())
			})

			// [4/16] Staff A checks in by scanning the token
			t.Run("04_ScanCheckIn", func(t *testing.T) {
				requestBody := attendanceDTO.ScanRequest{
					StaffID:           staffAID,
					Direction:         "check_in",
					Token:             checkInToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/attendance/scan", requestBody, false)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response attendanceDTO.EventResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, staffAID, response.StaffID)
				assert.Equal(t, "check_in", response.Direction)
				assert.Equal(t, "approved", response.Status)
			})

			// [5/16] Same staff, same direction, same device is refused
			t.Run("05_DuplicateCheckInRejected", func(t *testing.T) {
				requestBody := attendanceDTO.ScanRequest{
					StaffID:           staffAID,
					Direction:         "check_in",
					Token:             checkInToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/attendance/scan", requestBody, false)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			// [6/16] A different staff member on the same device is refused
			t.Run("06_DeviceReuseRejected", func(t *testing.T) {
				requestBody := attendanceDTO.ScanRequest{
					StaffID:           staffBID,
					Direction:         "check_in",
					Token:             checkInToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/attendance/scan", requestBody, false)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Contains(t, string(body), "device already used")
			})

			// [7/16] Staff B checks in from their own device using the fallback code
			t.Run("07_ScanWithFallbackCode", func(t *testing.T) {
				requestBody := attendanceDTO.ScanRequest{
					StaffID:           staffBID,
					Direction:         "check_in",
					Code:              checkInToken.FallbackCode,
					DeviceFingerprint: fingerprintB,
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/attendance/scan", requestBody, false)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response attendanceDTO.EventResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, staffBID, response.StaffID)
				assert.Equal(t, "approved", response.Status)
			})

			// [8/16] A check-in token cannot record a check-out
			t.Run("08_DirectionMismatchRejected", func(t *testing.T) {
				requestBody := attendanceDTO.ScanRequest{
					StaffID:           staffAID,
					Direction:         "check_out",
					Token:             checkInToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/attendance/scan", requestBody, false)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			// [9/16] Staff A checks out with a check-out token
			t.Run("09_ScanCheckOut", func(t *testing.T) {
				tokenRequest := tokenDTO.IssueKioskTokenRequest{Direction: "check_out"}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/kiosk/tokens", tokenRequest, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				err := json.Unmarshal(body, &checkOutToken)
				require.NoError(t, err)
				assert.Equal(t, "kiosk_checkout", checkOutToken.Kind)

				scanRequest := attendanceDTO.ScanRequest{
					StaffID:           staffAID,
					Direction:         "check_out",
					Token:             checkOutToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/attendance/scan", scanRequest, false)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response attendanceDTO.EventResponse
				err = json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "check_out", response.Direction)
			})

			// [10/16] Staff A's day so far: check-in then check-out
			t.Run("10_ListAttendance", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t,
					http.MethodGet,
					"/v1/staff/"+staffAID+"/attendance?date="+today,
					nil,
					true,
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response attendanceDTO.ListEventsResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				require.Len(t, response.Data, 2)
				assert.Equal(t, "check_in", response.Data[0].Direction)
				assert.Equal(t, "check_out", response.Data[1].Direction)
			})

			// [11/16] Staff A signs out and is locked
			t.Run("11_SignOutLocks", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/staff/"+staffAID+"/signout", nil, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/staff/"+staffAID, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response staffDTO.StaffResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.True(t, response.LockedOut)
			})

			// [12/16] Locked-out staff cannot scan
			t.Run("12_LockedOutScanRejected", func(t *testing.T) {
				requestBody := attendanceDTO.ScanRequest{
					StaffID:           staffAID,
					Direction:         "check_in",
					Token:             checkInToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/attendance/scan", requestBody, false)
				assert.Equal(t, http.StatusLocked, resp.StatusCode)
			})

			// [13/16] Admin issues a re-entry token and staff A redeems it
			t.Run("13_ReentryUnlocks", func(t *testing.T) {
				tokenRequest := tokenDTO.IssueReentryTokenRequest{StaffID: staffAID}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/reentry/tokens", tokenRequest, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				err := json.Unmarshal(body, &reentryToken)
				require.NoError(t, err)
				assert.Equal(t, "re_entry", reentryToken.Kind)

				unlockRequest := staffDTO.UnlockRequest{
					StaffID:           staffAID,
					Token:             reentryToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/reentry/redeem", unlockRequest, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Contains(t, string(body), "unlocked")

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/staff/"+staffAID, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response staffDTO.StaffResponse
				err = json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.False(t, response.LockedOut)
			})

			// [14/16] Re-entry tokens are single use
			t.Run("14_ReentryTokenConsumed", func(t *testing.T) {
				unlockRequest := staffDTO.UnlockRequest{
					StaffID:           staffAID,
					Token:             reentryToken.Value,
					DeviceFingerprint: fingerprintA,
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/reentry/redeem", unlockRequest, false)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			// [15/16] Closing the day auto-checks-out everyone still in
			t.Run("15_CloseDay", func(t *testing.T) {
				requestBody := attendanceDTO.CloseDayRequest{Date: today}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/days/close", requestBody, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response attendanceDTO.CloseDayResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, today, response.Date)
				assert.GreaterOrEqual(t, response.AutoCheckoutCount, int64(1),
					"staff still checked in should be auto-checked-out")

				statusResp, statusBody := ctx.makeRequest(t, http.MethodGet, "/v1/days/"+today, nil, true)
				assert.Equal(t, http.StatusOK, statusResp.StatusCode)

				var statusResponse attendanceDTO.DayStatusResponse
				err = json.Unmarshal(statusBody, &statusResponse)
				require.NoError(t, err)
				assert.True(t, statusResponse.IsClosed)

				// Closing twice is refused
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/days/close", requestBody, true)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			// [16/16] Kiosk tokens are refused once the day is closed
			t.Run("16_KioskRefusedAfterClose", func(t *testing.T) {
				requestBody := tokenDTO.IssueKioskTokenRequest{Direction: "check_in"}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/kiosk/tokens", requestBody, true)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})
		})
	}
}
