package candidate

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hirewire/job-market/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullProfileBodyDecodesToEmptyUpdate(t *testing.T) {
	rq := ProfileRq{}
	require.NoError(t, json.NewDecoder(strings.NewReader("null")).Decode(&rq))
	require.NoError(t, ValidateProfileRq(&rq))
	sanitize(&rq)
	assert.Nil(t, rq.Name)
	assert.Nil(t, rq.Skills)
}

func multipartResume(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestReadResume(t *testing.T) {
	body, contentType := multipartResume(t, 1024)
	req := httptest.NewRequest(http.MethodPost, "/profile/resume", body)
	req.Header.Set("Content-Type", contentType)
	data, mediaType, err := readResume(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Len(t, data, 1024)
	assert.Equal(t, "application/octet-stream", mediaType)
}

func TestReadResumeRejectsOversizedUpload(t *testing.T) {
	body, contentType := multipartResume(t, maxResumeSize+1)
	req := httptest.NewRequest(http.MethodPost, "/profile/resume", body)
	req.Header.Set("Content-Type", contentType)
	_, _, err := readResume(httptest.NewRecorder(), req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "resume", apperror.FieldOf(err))
}

func TestReadResumeMissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/profile/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	_, _, err := readResume(httptest.NewRecorder(), req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
