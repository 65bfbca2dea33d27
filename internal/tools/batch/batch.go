package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MaxItems bounds the IDs accepted by one tool call.
const MaxItems = 100

// Result represents the result of a single operation in a batch
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResult represents the aggregated results of a batch operation
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseStringOrArray parses a parameter that can be a single string, an array
// of strings, or a string holding a JSON array of strings. Some MCP clients
// send arrays in the last form. Repeated IDs are kept once, in first-seen order.
func ParseStringOrArray(param interface{}, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		if strings.HasPrefix(v, "[") {
			var items []interface{}
			if err := json.Unmarshal([]byte(v), &items); err == nil {
				return parseArray(items, paramName)
			}
		}
		return []string{v}, nil
	case []interface{}:
		return parseArray(v, paramName)
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return parseArray(items, paramName)
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}
}

func parseArray(items []interface{}, paramName string) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", paramName)
	}
	result := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
		}
		if str == "" {
			return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
		}
		if seen[str] {
			continue
		}
		seen[str] = true
		result = append(result, str)
	}
	if len(result) > MaxItems {
		return nil, fmt.Errorf("%s accepts at most %d items, got %d", paramName, MaxItems, len(result))
	}
	return result, nil
}

// Summarize counts the outcomes of results.
func Summarize(results []Result) BatchResult {
	br := BatchResult{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		if r.Status == StatusSuccess {
			br.Successful++
		} else {
			br.Failed++
		}
	}
	return br
}

// FormatResults creates a formatted JSON string from batch results
func FormatResults(results []Result) string {
	jsonBytes, _ := json.MarshalIndent(Summarize(results), "", "  ")
	return string(jsonBytes)
}

// ProcessBatch runs fn for each ID in order and collects one result per ID.
// A failing item does not stop the batch. Once ctx is done, the remaining IDs
// are reported as failed without calling fn.
func ProcessBatch(ctx context.Context, ids []string, fn func(ctx context.Context, id string) (string, error)) []Result {
	results := make([]Result, 0, len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			results = append(results, NewErrorResult(id, err))
			continue
		}
		res, err := fn(ctx, id)
		if err != nil {
			results = append(results, NewErrorResult(id, err))
		} else {
			results = append(results, NewSuccessResult(id, res))
		}
	}

	return results
}

// NewSuccessResult creates a success result
func NewSuccessResult(id, message string) Result {
	return Result{
		ID:     id,
		Status: StatusSuccess,
		Result: message,
	}
}

// NewErrorResult creates an error result
func NewErrorResult(id string, err error) Result {
	return Result{
		ID:     id,
		Status: StatusError,
		Error:  err.Error(),
	}
}
