package http

import (
	"encoding/json"
	"time"
)

// Response is the normalized result of one executed request. Header keys
// are lower-cased; the body is kept as text.
type Response struct {
	StatusCode int
	StatusText string
	Headers    map[string]string
	Body       string
	Duration   time.Duration
}

func (r *Response) BodyJSON() (any, error) {
	var result any
	if err := json.Unmarshal([]byte(r.Body), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Response) Header(key string) string {
	return r.Headers[key]
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
