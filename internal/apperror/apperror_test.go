package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthenticated()))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("nope")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("gone")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("email", "invalid")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Duplicate("exists")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(errors.New("pq: connection refused")))
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	err := errors.Wrap(NotFound("job not found"), "listing applicants")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindUpstream, KindOf(errors.New("dial tcp: timeout")))
}

func TestBodyValidationCarriesField(t *testing.T) {
	body := Body(Validation("phone", "phone is invalid"))
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Equal(t, "phone is invalid", body["message"])
	assert.Equal(t, "phone", body["field"])
}

func TestBodyUpstreamNeverEchoesInternalText(t *testing.T) {
	body := Body(errors.New("pq: password authentication failed for user"))
	assert.Equal(t, "UPSTREAM_FAILURE", body["error"])
	assert.NotContains(t, body["message"], "password")
}
