package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		expected   int
	}{
		{"корректный токен", "secret", "secret", http.StatusOK},
		{"неверный токен", "secret", "wrong", http.StatusForbidden},
		{"токен не передан", "secret", "", http.StatusForbidden},
		{"токен не настроен - доступ закрыт", "", "anything", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AdminAuth(tt.configured)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
			if tt.provided != "" {
				req.Header.Set("X-Admin-Token", tt.provided)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
