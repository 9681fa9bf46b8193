package response

import (
	"fmt"
	"net/http"
	"testing"

	"AttendBot/pkg/errors"
)

func TestErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		def  errors.Definition
		want int
	}{
		{errors.InvalidRequest, http.StatusBadRequest},
		{errors.LeaveStatusInvalid, http.StatusBadRequest},
		{errors.LeaveAlreadyDecided, http.StatusBadRequest},
		{errors.NoticeTypeInvalid, http.StatusBadRequest},
		{errors.WebhookSignatureBad, http.StatusForbidden},
		{errors.WebhookVerifyFailed, http.StatusForbidden},
		{errors.LeaveNotFound, http.StatusNotFound},
		{errors.EmployeeNotFound, http.StatusNotFound},
		{errors.TriggerNotFound, http.StatusNotFound},
	}

	for _, c := range cases {
		if got := errorToHTTPStatus(c.def); got != c.want {
			t.Errorf("errorToHTTPStatus(%s) = %d, want %d", c.def.Code, got, c.want)
		}
	}
}

// 非业务错误一律落到 500
func TestErrorToHTTPStatusUnknownError(t *testing.T) {
	if got := errorToHTTPStatus(fmt.Errorf("connection reset")); got != http.StatusInternalServerError {
		t.Fatalf("errorToHTTPStatus = %d, want %d", got, http.StatusInternalServerError)
	}
	if got := errorToHTTPStatus(errors.Definition{Code: "SOMETHING_ELSE"}); got != http.StatusInternalServerError {
		t.Fatalf("errorToHTTPStatus = %d, want %d", got, http.StatusInternalServerError)
	}
}
