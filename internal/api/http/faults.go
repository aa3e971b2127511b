package httpapi

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// faults drops the response of armed mutating requests after the handler
// has applied them, so clients observe a transport failure for a change the
// server kept.
type faults struct {
	mu        sync.Mutex
	remaining int
}

func (f *faults) arm(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remaining = n
}

func (f *faults) take(r *http.Request) bool {
	if !mutating(r) {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.remaining <= 0 {
		return false
	}
	f.remaining--
	return true
}

func mutating(r *http.Request) bool {
	switch r.Method {
	case http.MethodPatch, http.MethodDelete:
		return true
	case http.MethodPost:
		p := r.URL.Path
		return !strings.HasSuffix(p, "/list") && p != "/v1/register" && p != "/v1/login"
	}
	return false
}

func (f *faults) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.take(r) {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(&discardWriter{header: http.Header{}}, r)

		hj, ok := w.(http.Hijacker)
		if !ok {
			respondError(w, http.StatusServiceUnavailable, "fault_injected", "response dropped")
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	})
}

type discardWriter struct {
	header http.Header
}

func (d *discardWriter) Header() http.Header         { return d.header }
func (d *discardWriter) Write(b []byte) (int, error) { return io.Discard.Write(b) }
func (d *discardWriter) WriteHeader(int)             {}
