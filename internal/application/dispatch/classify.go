package dispatch

import (
	"encoding/json"
	"strings"

	"github.com/andrescamacho/traveller-go/internal/domain/ports"
	"github.com/andrescamacho/traveller-go/internal/domain/shared"
)

// SuccessPrefix marks a successful operation in a sentinel endpoint's body
const SuccessPrefix = "This API"

// Classify interprets one mutation reply.
//
//  1. no reply, or a non-2xx status: *shared.TransportError
//  2. a sentinel endpoint whose body text lacks SuccessPrefix: *shared.BusinessRejection
//  3. otherwise success, returning the body text
func Classify(action string, sentinel bool, reply *ports.Reply, sendErr error) (string, error) {
	if sendErr != nil {
		return "", shared.NewTransportError(action, 0, "", sendErr)
	}
	if !reply.OK() {
		status := 0
		detail := ""
		if reply != nil {
			status = reply.StatusCode
			detail = string(reply.Body)
		}
		return "", shared.NewTransportError(action, status, detail, nil)
	}

	text := BodyText(reply.Body)
	if sentinel && !strings.HasPrefix(text, SuccessPrefix) {
		return "", shared.NewBusinessRejection(action, text)
	}
	return text, nil
}

// BodyText extracts the message of a reply: the Data string of a JSON
// envelope, a bare JSON string, or else the trimmed raw body.
func BodyText(body []byte) string {
	var env struct {
		Data *string `json:"Data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return *env.Data
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(body))
}
