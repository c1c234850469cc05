package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func jsonHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","application_id":"APP-TEST000001"}`))
	})
}

func TestReadBodyIsRepeatable(t *testing.T) {
	rr := DoRequest(jsonHandler(), httptest.NewRequest(http.MethodGet, "/", nil))

	first := ReadBody(t, rr)
	second := ReadBody(t, rr)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestResponseAssertionsShareOneRecorder(t *testing.T) {
	rr := DoRequest(jsonHandler(), httptest.NewRequest(http.MethodGet, "/", nil))

	// Multiple assertions against the same recorder must all see the body.
	AssertJSONContains(t, rr, "status", "success")
	AssertJSONContains(t, rr, "application_id", "APP-TEST000001")

	resp := UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, "success", (*resp)["status"])
}
