// FILE: internal/gateway/errors.go
package gateway

import "encoding/json"

// GenericErrorMessage is shown when the backend error body cannot be parsed.
const GenericErrorMessage = "Произошла ошибка"

// APIError carries the HTTP status and the human-readable detail extracted
// from the backend error envelope {detail: string | [{loc,msg,type}]}.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type validationItem struct {
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}

type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	msg := GenericErrorMessage

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(env.Detail, &detail); err == nil && detail != "" {
			msg = detail
		} else {
			var items []validationItem
			if err := json.Unmarshal(env.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
				msg = items[0].Msg
			}
		}
	}

	return &APIError{StatusCode: statusCode, Message: msg}
}
