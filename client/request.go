package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/gqlgo/gqltypegen/graphqljson"
)

type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// NewRequest builds a JSON POST request for a GraphQL operation.
func NewRequest(ctx context.Context, endpoint, operationName, query string, variables map[string]any) (*http.Request, error) {
	body, err := json.Marshal(Request{
		Query:         query,
		Variables:     variables,
		OperationName: operationName,
	})
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request struct failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json; charset=utf-8")

	return req, nil
}

// ErrorResponse is returned when the server answers with a non 2xx status
// or with GraphQL errors.
type ErrorResponse struct {
	StatusCode int
	Body       string
	Errors     gqlerror.List
}

func (e *ErrorResponse) Error() string {
	var msgs []string
	if e.StatusCode != 0 {
		msgs = append(msgs, fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body))
	}
	if len(e.Errors) > 0 {
		msgs = append(msgs, e.Errors.Error())
	}
	return strings.Join(msgs, "; ")
}

type response struct {
	Data   jsontext.Value `json:"data"`
	Errors gqlerror.List  `json:"errors"`
}

// ParseResponse reads resp and decodes its "data" member into out.
func ParseResponse(resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ErrorResponse{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("failed to decode response %q: %w", body, err)
	}
	if len(r.Errors) > 0 {
		return &ErrorResponse{Errors: r.Errors}
	}
	if len(r.Data) == 0 {
		return errors.New("response has no data")
	}

	return graphqljson.UnmarshalData(r.Data, out)
}
