package kratos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	kratosclient "github.com/ory/kratos-client-go"

	"account-service/app/domain"
)

// classifyError maps a Kratos API error to the domain taxonomy. No raw
// provider error crosses this boundary.
func classifyError(err error, httpResp *http.Response, operation string) error {
	if kratosErr, ok := err.(*kratosclient.GenericOpenAPIError); ok {
		if classified := classifyBody(kratosErr.Body(), operation, err); classified != nil {
			return classified
		}
	}

	if httpResp != nil {
		return classifyStatus(httpResp.StatusCode, operation, err)
	}

	// No HTTP response at all: transport-level failure.
	return domain.NewAccountError(domain.KindProviderUnavailable,
		fmt.Sprintf("identity provider unreachable during %s", operation), err)
}

// classifyBody inspects the structured error payload for messages that map
// to a specific taxonomy member. Returns nil when inconclusive.
func classifyBody(body []byte, operation string, cause error) error {
	var payload map[string]interface{}
	if jsonErr := json.Unmarshal(body, &payload); jsonErr != nil {
		return classifyMessage(string(body), operation, cause)
	}

	for _, msg := range collectMessages(payload) {
		if classified := classifyMessage(msg, operation, cause); classified != nil {
			return classified
		}
	}

	return nil
}

// collectMessages gathers candidate human-readable messages from the
// payload: top-level message/reason, error object, and UI messages.
func collectMessages(payload map[string]interface{}) []string {
	var messages []string

	if m, ok := payload["message"].(string); ok {
		messages = append(messages, m)
	}
	if r, ok := payload["reason"].(string); ok {
		messages = append(messages, r)
	}
	if errorObj, ok := payload["error"].(map[string]interface{}); ok {
		if m, ok := errorObj["message"].(string); ok {
			messages = append(messages, m)
		}
		if r, ok := errorObj["reason"].(string); ok {
			messages = append(messages, r)
		}
	}
	if ui, ok := payload["ui"].(map[string]interface{}); ok {
		if uiMessages, ok := ui["messages"].([]interface{}); ok {
			for _, raw := range uiMessages {
				if msgMap, ok := raw.(map[string]interface{}); ok {
					if text, ok := msgMap["text"].(string); ok {
						messages = append(messages, text)
					}
				}
			}
		}
	}

	return messages
}

// classifyMessage matches known Kratos error texts. Returns nil when the
// message does not identify a taxonomy member.
func classifyMessage(message, operation string, cause error) error {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "credentials are invalid"),
		strings.Contains(lower, "no user found"),
		strings.Contains(lower, "invalid credentials"):
		return domain.NewAccountError(domain.KindInvalidCredentials,
			"invalid credentials", cause)
	case strings.Contains(lower, "already in use"),
		strings.Contains(lower, "already exists"),
		strings.Contains(lower, "exists already"):
		return domain.NewAccountError(domain.KindDuplicateIdentity,
			"identity already registered", cause)
	}

	return nil
}

// classifyStatus falls back to the HTTP status code when the body carried no
// recognizable message.
func classifyStatus(statusCode int, operation string, cause error) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return domain.NewAccountError(domain.KindInvalidCredentials,
			fmt.Sprintf("provider rejected %s", operation), cause)
	case statusCode == http.StatusBadRequest && isCredentialOperation(operation):
		return domain.NewAccountError(domain.KindInvalidCredentials,
			fmt.Sprintf("provider rejected %s", operation), cause)
	case statusCode == http.StatusConflict:
		return domain.NewAccountError(domain.KindDuplicateIdentity,
			"identity already registered", cause)
	case statusCode >= 500:
		return domain.NewAccountError(domain.KindProviderUnavailable,
			fmt.Sprintf("identity provider failed during %s", operation), cause)
	default:
		return domain.NewAccountError(domain.KindUnknown,
			fmt.Sprintf("provider %s failed with status %d", operation, statusCode), cause)
	}
}

// isCredentialOperation reports whether a 400 from this operation means bad
// credentials rather than a malformed request. Kratos answers failed
// password submissions with 400.
func isCredentialOperation(operation string) bool {
	return operation == "login_flow_submit"
}

func getHTTPStatus(httpResp *http.Response) int {
	if httpResp == nil {
		return 0
	}
	return httpResp.StatusCode
}
