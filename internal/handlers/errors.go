package handlers

import (
	"context"
	"fmt"
	"strings"
)

// Analyzer sends a submission to the analysis workflow and returns the report
type Analyzer interface {
	Analyze(ctx context.Context, payload map[string]interface{}) (string, error)
}

// TicketArchiver stores an uploaded ticket and returns its key
type TicketArchiver interface {
	Archive(ctx context.Context, ticket string) (string, error)
}

// ValidationError is a missing or malformed field in a request body
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// EmailPolicy decides what happens to submissions without an email
type EmailPolicy struct {
	RejectMissing bool
	DefaultEmail  string
}

func (p EmailPolicy) resolve(email string) (string, error) {
	if email = strings.TrimSpace(email); email != "" {
		return email, nil
	}
	if p.RejectMissing {
		return "", &ValidationError{Field: "email"}
	}
	return p.DefaultEmail, nil
}
