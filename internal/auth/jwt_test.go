package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService(testSecret)

	token, expiresAt, err := service.GenerateToken("checkout-app", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "checkout-app", claims.ClientID)
	assert.Equal(t, "checkout-app", claims.Subject)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("other").GenerateToken("client", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTService(testSecret).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	service := NewJWTService(testSecret)
	token, _, err := service.GenerateToken("client", time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	token, _, err := NewJWTService(testSecret).GenerateToken("client-1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "Missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "Not a bearer token", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "Garbage token", header: "Bearer nope", expectedStatus: http.StatusUnauthorized},
		{name: "Valid token", header: "Bearer " + token, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JWTMiddleware(testSecret))
			router.GET("/receipts/1/points", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"client": c.GetString(ClientIDKey)})
			})

			req := httptest.NewRequest(http.MethodGet, "/receipts/1/points", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"status":"UNAUTHORIZED"`)
				assert.Contains(t, w.Body.String(), `"route":"/receipts/1/points"`)
			} else {
				assert.Contains(t, w.Body.String(), "client-1")
			}
		})
	}
}
