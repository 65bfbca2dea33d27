package instrumentation

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that records http_requests_total and
// http_request_duration_seconds for every request it forwards.
type Transport struct {
	Base    http.RoundTripper
	Metrics *Metrics
}

// NewTransport wraps base. A nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper, metrics *Metrics) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Metrics: metrics}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Base.RoundTrip(req)

	status := 0
	if err == nil {
		status = resp.StatusCode
	}
	t.Metrics.RecordHTTPRequest(req.Context(), req.Method, req.URL.Host, status, time.Since(start))

	return resp, err
}
