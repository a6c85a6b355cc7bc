package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// AnalysisError reports a failed call to the analysis workflow
type AnalysisError struct {
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *AnalysisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis webhook returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("analysis webhook failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// AnalysisService forwards submissions to the n8n workflow and turns its
// answer into a plain text report
type AnalysisService struct {
	webhookURL string
	timeout    time.Duration
}

// NewAnalysisService creates a client for the webhook. A zero timeout keeps
// the transport default.
func NewAnalysisService(webhookURL string, timeout time.Duration) *AnalysisService {
	return &AnalysisService{
		webhookURL: webhookURL,
		timeout:    timeout,
	}
}

// Analyze posts the payload as JSON and waits for the full response. It does
// not retry. A deadline on ctx bounds the call.
func (s *AnalysisService) Analyze(ctx context.Context, payload map[string]interface{}) (string, error) {
	agent := fiber.Post(s.webhookURL).
		JSONEncoder(json.Marshal).
		JSON(payload)

	if timeout := s.requestTimeout(ctx); timeout > 0 {
		agent.Timeout(timeout)
	}

	code, body, errs := agent.String()
	if len(errs) > 0 {
		log.Printf("❌ Analysis webhook call failed: %v", errs)
		return "", &AnalysisError{Err: errors.Join(errs...)}
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		log.Printf("❌ Analysis webhook returned %d", code)
		return "", &AnalysisError{StatusCode: code, Err: errors.New(truncate(body, 200))}
	}

	return NormalizeReport(body), nil
}

func (s *AnalysisService) requestTimeout(ctx context.Context) time.Duration {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout == 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

// reportRule pulls a report out of a decoded webhook response
type reportRule func(v interface{}) string

// Tried in order; the first non-empty result wins.
var reportRules = []reportRule{
	objectField("text"),
	objectField("output"),
	objectField("data"),
	firstElementField("text"),
}

// NormalizeReport extracts the report text from a webhook response body.
// Bodies that are not JSON, or carry none of the known fields, are returned
// verbatim.
func NormalizeReport(body string) string {
	var decoded interface{}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return body
	}

	for _, rule := range reportRules {
		if report := rule(decoded); report != "" {
			return report
		}
	}
	return body
}

func objectField(name string) reportRule {
	return func(v interface{}) string {
		obj, ok := v.(map[string]interface{})
		if !ok {
			return ""
		}
		return reportText(obj[name])
	}
}

func firstElementField(name string) reportRule {
	return func(v interface{}) string {
		list, ok := v.([]interface{})
		if !ok || len(list) == 0 {
			return ""
		}
		return objectField(name)(list[0])
	}
}

// reportText renders a field value as report text. Nested objects and
// arrays are kept as JSON; scalars other than strings are not reports.
func reportText(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]interface{}, []interface{}:
		if isEmptyContainer(val) {
			return ""
		}
		encoded, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return ""
	}
}

func isEmptyContainer(v interface{}) bool {
	switch val := v.(type) {
	case map[string]interface{}:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
