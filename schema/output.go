package schema

import "fmt"

// ToolOutput is the uniform result envelope every tool execution returns.
// Success and failure share the same shape so callers only ever branch on
// the Success field, never on a type.
type ToolOutput struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Success builds a successful output. Data may be nil.
func Success(message string, data map[string]any) ToolOutput {
	return ToolOutput{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Failure builds a failed output. If errMsg is empty the message is reused
// so the Error-iff-failure invariant always holds.
func Failure(message, errMsg string) ToolOutput {
	if errMsg == "" {
		errMsg = message
	}
	return ToolOutput{
		Success: false,
		Message: message,
		Error:   errMsg,
	}
}

// Failuref builds a failed output with a formatted message used for both
// the human-readable message and the error field.
func Failuref(format string, args ...any) ToolOutput {
	msg := fmt.Sprintf(format, args...)
	return Failure(msg, msg)
}

// Validate checks the envelope invariants: Message is always present, and
// Error is populated if and only if Success is false.
func (o ToolOutput) Validate() error {
	if o.Message == "" {
		return fmt.Errorf("tool output message must not be empty")
	}
	if o.Success && o.Error != "" {
		return fmt.Errorf("successful tool output must not carry an error: %q", o.Error)
	}
	if !o.Success && o.Error == "" {
		return fmt.Errorf("failed tool output must carry an error")
	}
	return nil
}
