package actions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
	"github.com/felixgeelhaar/makeflow/internal/validation"
)

var httpMethods = map[string]bool{
	http.MethodGet:  true,
	http.MethodPost: true,
	http.MethodPut:  true,
}

func httpDefinition() Definition {
	return Definition{
		Kind:    KindHTTP,
		Summary: "sends an HTTP request and fails on a non-2xx response",
		Params: Params{
			{Name: "url", Type: TypeString, Required: true},
			{Name: "method", Type: TypeString},
			{Name: "headers", Type: TypeStringMap},
			{Name: "query", Type: TypeStringMap},
			{Name: "body", Type: TypeAny},
			{Name: "output", Type: TypeString},
		},
		New: newHTTP,
	}
}

func newHTTP(args Args, deps Deps) (Built, error) {
	if v, ok := args.Literal("url"); ok {
		if u, isString := v.(string); isString {
			if err := validation.ValidateURL(u); err != nil {
				return Built{}, err
			}
		}
	}
	if v, ok := args.Literal("method"); ok {
		if m, isString := v.(string); isString && !httpMethods[strings.ToUpper(m)] {
			return Built{}, fmt.Errorf("unsupported HTTP method %q", m)
		}
	}

	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		endpoint, err := r.String("url")
		if err != nil {
			return err
		}
		if err := validation.ValidateURL(endpoint); err != nil {
			return err
		}
		method, err := r.StringOr("method", http.MethodPost)
		if err != nil {
			return err
		}
		method = strings.ToUpper(method)
		if !httpMethods[method] {
			return fmt.Errorf("unsupported HTTP method %q", method)
		}
		headers, err := r.StringMap("headers")
		if err != nil {
			return err
		}
		query, err := r.StringMap("query")
		if err != nil {
			return err
		}
		output, err := r.StringOr("output", "")
		if err != nil {
			return err
		}

		reqURL, err := withQuery(endpoint, query)
		if err != nil {
			return err
		}

		var body io.Reader
		if method != http.MethodGet {
			raw, _ := r.Raw("body")
			payload, err := encodeBody(raw)
			if err != nil {
				return err
			}
			if payload != nil {
				body = bytes.NewReader(payload)
			}
		}

		req, err := http.NewRequestWithContext(rc.Context(), method, reqURL, body)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		logger(rc).Info(rc.Context(), fmt.Sprintf("%s %s", method, reqURL))

		resp, err := deps.HTTP.Do(req)
		if err != nil {
			return fmt.Errorf("failed to execute request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		logger(rc).Debug(rc.Context(), "received HTTP response",
			ports.F("status", resp.Status),
			ports.F("bytes", len(data)))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("%s %s returned %s", method, reqURL, resp.Status)
		}

		if output != "" {
			path := rc.Path(output)
			if err := deps.FS.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to save response to %s: %w", path, err)
			}
		}
		return nil
	})

	return Built{
		Action: action,
		Attrs: literalAttrs(args, map[string]string{
			"url":    "url",
			"output": target.AttrDest,
		}),
	}, nil
}

func withQuery(endpoint string, query map[string]string) (string, error) {
	if len(query) == 0 {
		return endpoint, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", endpoint, err)
	}
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// encodeBody sends strings as-is and encodes anything else as JSON.
func encodeBody(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		return data, nil
	}
}
