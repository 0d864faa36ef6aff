package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campbook/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.ValidationError{Field: "phone", Msg: "required"}, http.StatusBadRequest, domain.CodeValidation},
		{"capacity", domain.ValidationError{Field: "participants", Code: domain.CodeCapacityExceeded}, http.StatusBadRequest, domain.CodeCapacityExceeded},
		{"unauthorized", domain.UnauthorizedError{}, http.StatusUnauthorized, domain.CodeUnauthorized},
		{"forbidden", domain.ForbiddenError{}, http.StatusForbidden, domain.CodeForbidden},
		{"not found", domain.NotFoundError{Resource: "order"}, http.StatusNotFound, domain.CodeNotFound},
		{"conflict", domain.ConflictError{Code: domain.CodeScheduleConflict, Details: map[string]any{"conflictingScheduleId": 9}}, http.StatusConflict, domain.CodeScheduleConflict},
		{"rate limited", domain.RateLimitError{}, http.StatusTooManyRequests, domain.CodeRateLimited},
		{"other", errors.New("dial tcp: refused"), http.StatusInternalServerError, domain.CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondDomainError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)

			var body struct {
				Success bool      `json:"success"`
				Error   ErrorBody `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error.Code)
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Error.Message, "dial tcp")
			}
		})
	}
}

func TestRespondPageNeverNull(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondPage(c, domain.Page[int]{Pagination: domain.NewPagination(1, 20, 0)})

	assert.JSONEq(t, `{"success":true,"data":[],"pagination":{"page":1,"pageSize":20,"total":0,"totalPages":0}}`, w.Body.String())
}
