package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fitness-scheduler/common/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()

	httputil.RespondWithError(w, http.StatusNotFound, "Member ID Not Found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Error":"Member ID Not Found"}`, w.Body.String())
}

func TestRespondWithMessage(t *testing.T) {
	w := httptest.NewRecorder()

	httputil.RespondWithMessage(w, http.StatusOK, "Member Removed Successfully")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"Message":"Member Removed Successfully"}`, w.Body.String())
}

func TestRespondWithJSONPreservesFieldOrder(t *testing.T) {
	w := httptest.NewRecorder()

	httputil.RespondWithJSON(w, http.StatusOK, struct {
		B string `json:"b"`
		A string `json:"a"`
	}{B: "1", A: "2"})

	assert.Equal(t, `{"b":"1","a":"2"}`, w.Body.String())
}

func TestRespondWithJSONMarshalFailure(t *testing.T) {
	w := httptest.NewRecorder()

	httputil.RespondWithJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"Error":"Internal Server Error"}`, w.Body.String())
}

func TestRespondWithHTML(t *testing.T) {
	w := httptest.NewRecorder()

	httputil.RespondWithHTML(w, http.StatusOK, "<h1>hi</h1>")

	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>hi</h1>", w.Body.String())
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "7", want: 7},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var got int64
			var gotErr error

			router := chi.NewRouter()
			router.Get("/members/{id}", func(w http.ResponseWriter, r *http.Request) {
				got, gotErr = httputil.PathID(r, "id")
			})
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/"+tt.raw, nil))

			if tt.wantErr {
				assert.ErrorIs(t, gotErr, httputil.ErrInvalidID)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
