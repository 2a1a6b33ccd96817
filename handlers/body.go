package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes applies when no positive limit is configured.
const DefaultMaxBodyBytes = 1 << 20

var ErrInvalidBody = errors.New("invalid request body")

// BodyResult is the outcome of reading a JSON request body. Raw always holds
// a JSON object when Err is nil; an empty body parses as "{}".
type BodyResult struct {
	Raw json.RawMessage
	Err error
}

func (r BodyResult) OK() bool { return r.Err == nil }

// ParseBody reads at most limit bytes of the request body.
func ParseBody(c *gin.Context, limit int64) BodyResult {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return BodyResult{Raw: json.RawMessage("{}")}
	}
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
	if err != nil {
		return BodyResult{Err: fmt.Errorf("%w: %v", ErrInvalidBody, err)}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return BodyResult{Raw: json.RawMessage("{}")}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return BodyResult{Err: fmt.Errorf("%w: %v", ErrInvalidBody, err)}
	}
	if obj == nil {
		return BodyResult{Err: fmt.Errorf("%w: body must be a JSON object", ErrInvalidBody)}
	}
	return BodyResult{Raw: json.RawMessage(data)}
}
