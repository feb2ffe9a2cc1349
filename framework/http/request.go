package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fretelweb/go-validator/framework/validation"
)

const (
	maxMemory    = 32 << 20 // 32 MB
	maxBodyBytes = 1 << 20
)

var (
	ErrEmptyBody     = errors.New("empty request body")
	ErrMalformedBody = errors.New("malformed request body")
	ErrNestedValue   = errors.New("nested values are not supported")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Input ────────────────────────────────────────────────────────────────────

// Data reads the body as a flat record for validation.
//
// JSON bodies must be an object. A null member is treated as absent, numbers
// and booleans keep their literal text, arrays and objects are rejected.
// Form bodies (urlencoded or multipart) keep the first value of each key.
// Any other content type is rejected, and so is a body over 1 MiB.
func (req *Request) Data() (validation.Data, error) {
	mediaType, _, _ := mime.ParseMediaType(req.ContentType())
	req.raw.Body = http.MaxBytesReader(nil, req.raw.Body, maxBodyBytes)

	switch mediaType {
	case "application/json":
		return req.jsonData()
	case "multipart/form-data":
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return first(req.raw.MultipartForm.Value), nil
	case "application/x-www-form-urlencoded", "":
		if err := req.raw.ParseForm(); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return first(req.raw.PostForm), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func (req *Request) jsonData() (validation.Data, error) {
	defer req.raw.Body.Close()

	body, err := io.ReadAll(io.LimitReader(req.raw.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.Join(ErrMalformedBody, err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedBody, maxBodyBytes)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Join(ErrMalformedBody, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedBody)
	}

	data := make(validation.Data, len(raw))
	for key, msg := range raw {
		value, present, err := scalar(msg)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q", err, key)
		}
		if present {
			data[key] = value
		}
	}
	return data, nil
}

// scalar renders one JSON member as input text.
func scalar(msg json.RawMessage) (string, bool, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", false, errors.Join(ErrMalformedBody, err)
	}

	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case json.Number:
		return t.String(), true, nil
	case bool:
		return strconv.FormatBool(t), true, nil
	default:
		return "", false, ErrNestedValue
	}
}

func first(values map[string][]string) validation.Data {
	data := make(validation.Data, len(values))
	for k, vals := range values {
		if len(vals) > 0 {
			data[k] = vals[0]
		}
	}
	return data
}

// ── Request metadata ─────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}
