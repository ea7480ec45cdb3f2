package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestLogging(t *testing.T) {
	t.Run("passes through handler response and assigns request id", func(t *testing.T) {
		handler := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, GetRequestID(r.Context()))
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "short and stout", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
	})

	t.Run("honours inbound request id", func(t *testing.T) {
		handler := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "upstream-id", GetRequestID(r.Context()))
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderXRequestID, "upstream-id")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-id", rec.Header().Get(HeaderRequestID))
	})
}
