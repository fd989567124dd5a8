package middleware

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder holds back error responses so they can be rewritten as
// JSON. Successful responses pass straight through.
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.statusCode = statusCode
	r.wroteHeader = true
	if statusCode < 400 {
		r.ResponseWriter.WriteHeader(statusCode)
	}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if r.statusCode >= 400 {
		return r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

// Flush lets streaming handlers keep working behind the recorder.
func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *responseRecorder) writeError(status int, body []byte) {
	r.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	r.ResponseWriter.Header().Del("Content-Length")
	r.ResponseWriter.WriteHeader(status)
	r.ResponseWriter.Write(body)
}

// errorBody returns raw unchanged when it already is a JSON error object,
// otherwise wraps the text in an ErrorResponse.
func errorBody(status int, raw []byte) []byte {
	var probe map[string]interface{}
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, ok := probe["error"]; ok {
			return raw
		}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(status)
	}
	out, _ := json.Marshal(ErrorResponse{Error: msg})
	return append(out, '\n')
}

// ErrorHandler is a middleware that logs errors and returns a JSON error response
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[ErrorHandler] panic serving %s %s: %v", r.Method, r.URL.Path, err)
				out, _ := json.Marshal(ErrorResponse{Error: "Internal Server Error"})
				rec.writeError(http.StatusInternalServerError, append(out, '\n'))
				return
			}
			if rec.statusCode >= 400 {
				if rec.statusCode >= 500 {
					log.Printf("[ErrorHandler] %s %s returned %d", r.Method, r.URL.Path, rec.statusCode)
				}
				rec.writeError(rec.statusCode, errorBody(rec.statusCode, rec.body.Bytes()))
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
