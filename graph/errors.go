package graph

import (
	"encoding/json"
	"fmt"
)

// ResponseError is the error object the Graph API returns instead of a node
type ResponseError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode"`
	TraceID   string `json:"fbtrace_id"`
	UserTitle string `json:"error_user_title"`
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("graph error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("graph error %d (%s): %s", e.Code, e.Type, e.Message)
}

// responseError returns the decoded error when the body is an error envelope
func responseError(body map[string]any) error {
	value, ok := body["error"]
	if !ok {
		return nil
	}
	payload, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to read graph error: %w", err)
	}
	var responseErr ResponseError
	if err := json.Unmarshal(raw, &responseErr); err != nil {
		return fmt.Errorf("failed to read graph error: %w", err)
	}
	return &responseErr
}
