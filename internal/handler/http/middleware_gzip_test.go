// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGZip(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
		status         int
		body           string
		wantGzipped    bool
	}{
		{name: "json compressed", acceptEncoding: "gzip", contentType: "application/json", body: `{"Title":"Inception"}`, wantGzipped: true},
		{name: "text compressed", acceptEncoding: "deflate, gzip, br", contentType: "text/plain; charset=utf-8", body: "Welcome to Strobe!", wantGzipped: true},
		{name: "sniffed html compressed", acceptEncoding: "gzip", body: "<html><body>docs</body></html>", wantGzipped: true},
		{name: "client without gzip", acceptEncoding: "", contentType: "application/json", body: `[]`},
		{name: "image passed through", acceptEncoding: "gzip", contentType: "image/png", body: "\x89PNG"},
		{name: "no content", acceptEncoding: "gzip", contentType: "application/json", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					io.WriteString(w, tt.body)
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			withGZip(next).ServeHTTP(rec, req)

			if !tt.wantGzipped {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, rec.Body.String())
				return
			}

			assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			got, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(got))
		})
	}
}
