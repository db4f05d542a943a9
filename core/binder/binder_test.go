package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arokeji/Nailted-Back/core/binder"
)

type scoreInput struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type updateRequest struct {
	ID            string       `path:"id" json:"-"`
	Email         *string      `json:"email"`
	GlobalScore   *float64     `json:"globalScore"`
	CategoryScore []scoreInput `json:"categoryScore"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/session/abc", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("binds and sanitizes strings", func(t *testing.T) {
		t.Parallel()

		r := jsonRequest(`{"email":"  a@b.com\r\n","globalScore":0,"categoryScore":[{"category":" c1 ","score":3}],"unknown":true}`)
		var req updateRequest
		require.NoError(t, binder.JSON()(r, &req))

		require.NotNil(t, req.Email)
		assert.Equal(t, "a@b.com", *req.Email)
		require.NotNil(t, req.GlobalScore)
		assert.Zero(t, *req.GlobalScore)
		assert.Equal(t, []scoreInput{{Category: "c1", Score: 3}}, req.CategoryScore)
	})

	t.Run("absent fields stay nil", func(t *testing.T) {
		t.Parallel()

		var req updateRequest
		require.NoError(t, binder.JSON()(jsonRequest(`{}`), &req))
		assert.Nil(t, req.Email)
		assert.Nil(t, req.GlobalScore)
		assert.Nil(t, req.CategoryScore)
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"missing content type", "", `{}`, binder.ErrMissingContentType},
		{"wrong content type", "text/plain", `{}`, binder.ErrUnsupportedMediaType},
		{"empty body", "application/json", ``, binder.ErrFailedToParseJSON},
		{"malformed", "application/json", `{"email":`, binder.ErrFailedToParseJSON},
		{"wrong type", "application/json", `{"globalScore":"high"}`, binder.ErrFailedToParseJSON},
		{"trailing data", "application/json", `{} {}`, binder.ErrFailedToParseJSON},
		{"too large", "application/json", `{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, binder.ErrFailedToParseJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			var req updateRequest
			assert.ErrorIs(t, binder.JSON()(r, &req), tt.wantErr)
		})
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	type params struct {
		ID      string `path:"id"`
		Version int    `path:"version"`
		Skip    string `path:"-"`
		Missing string `path:"missing"`
	}

	values := map[string]string{"id": " 6474ebae9b1c30f834df26e7 ", "version": "3", "-": "x"}
	extract := func(_ *http.Request, name string) string { return values[name] }

	var p params
	require.NoError(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), &p))
	assert.Equal(t, "6474ebae9b1c30f834df26e7", p.ID)
	assert.Equal(t, 3, p.Version)
	assert.Empty(t, p.Skip)
	assert.Empty(t, p.Missing)

	values["version"] = "three"
	assert.ErrorIs(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), &p), binder.ErrFailedToParsePath)
	assert.ErrorIs(t, binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), &p), binder.ErrFailedToParsePath)
	assert.ErrorIs(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), p), binder.ErrFailedToParsePath)
}

func TestPathValue(t *testing.T) {
	t.Parallel()

	var got string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /session/email/{email}", func(w http.ResponseWriter, r *http.Request) {
		var p struct {
			Email string `path:"email"`
		}
		if err := binder.Bind(r, &p, binder.Path(binder.PathValue)); err == nil {
			got = p.Email
		}
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/session/email/a@b.com", nil))
	assert.Equal(t, "a@b.com", got)
}
