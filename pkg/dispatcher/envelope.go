// Package dispatcher routes calls by function name to registered invokable
// units and wraps every outcome in a result envelope.
package dispatcher

import (
	"encoding/json"

	"github.com/morezero/functioneer/pkg/codec"
	"github.com/morezero/functioneer/pkg/fnerr"
)

// ResultEnvelope is the outcome of one dispatch. Result is set on success,
// Message on failure.
type ResultEnvelope struct {
	Success bool
	Result  any
	Message string

	// Err is the typed failure. It is not serialized.
	Err *fnerr.Error
}

type successJSON struct {
	Success bool `json:"success"`
	Result  any  `json:"result,omitempty"`
}

type failureJSON struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MarshalJSON emits {"success":true,"result":...} or
// {"success":false,"message":"..."}.
func (e *ResultEnvelope) MarshalJSON() ([]byte, error) {
	if e.Success {
		return codec.EncodePayload(successJSON{Success: true, Result: e.Result})
	}
	return codec.EncodePayload(failureJSON{Success: false, Message: e.Message})
}

// UnmarshalJSON reads the JSON form back. Err is left nil.
func (e *ResultEnvelope) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success bool   `json:"success"`
		Result  any    `json:"result"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = ResultEnvelope{Success: raw.Success, Result: raw.Result, Message: raw.Message}
	return nil
}

// ObjectCall names a function under "functionName" and carries its
// arguments keyed by field name.
type ObjectCall map[string]any

// FunctionNameKey is the ObjectCall key holding the function name.
const FunctionNameKey = "functionName"

func success(result any) *ResultEnvelope {
	return &ResultEnvelope{Success: true, Result: result}
}

func failure(err *fnerr.Error, message string) *ResultEnvelope {
	return &ResultEnvelope{Success: false, Message: message, Err: err}
}
