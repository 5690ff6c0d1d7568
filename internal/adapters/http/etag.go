package http

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"net/http"
)

// conditionalHandler buffers successful GET/HEAD responses, tags them with a
// strong ETag, and answers 304 when the client already holds the body.
func conditionalHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		buf := &bufferingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(buf, r)

		if buf.status != http.StatusOK {
			buf.flush()
			return
		}

		etag := fmt.Sprintf("%q", fmt.Sprintf("%x", sha256.Sum256(buf.body.Bytes())))
		w.Header().Set("ETag", etag)

		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		buf.flush()
	})
}

// bufferingWriter holds back the response until the handler finishes so the
// ETag can be derived from the full body.
type bufferingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bufferingWriter) WriteHeader(status int) {
	w.status = status
}

func (w *bufferingWriter) Write(p []byte) (int, error) {
	return w.body.Write(p)
}

func (w *bufferingWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	if w.body.Len() > 0 {
		_, _ = w.ResponseWriter.Write(w.body.Bytes())
	}
}
