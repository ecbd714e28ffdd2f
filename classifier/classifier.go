// Package classifier turns a raw HTTP status and body into an Outcome:
// either a decoded result or a classified *errors.AppError.
//
// Classification order:
//
//  1. a body that does not decode is MALFORMED_RESPONSE, whatever the status
//  2. 5xx is SERVER_ERROR carrying the decoded body
//  3. 404 is NOT_FOUND
//  4. other 4xx is BAD_REQUEST when the body has a message, else CLIENT_ERROR
//  5. 2xx is success
//  6. anything else is UNEXPECTED_STATUS
package classifier

import (
	"github.com/kbukum/restmapper/codec"
	"github.com/kbukum/restmapper/errors"
)

// MessageField is the body field read as the server's error message.
const MessageField = "message"

// Outcome is the result of one operation: a decoded Result or an Err.
type Outcome struct {
	StatusCode int
	Result     any
	Err        error
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Err == nil }

// Unwrap returns the result and error pair.
func (o Outcome) Unwrap() (any, error) {
	if o.Err != nil {
		return nil, o.Err
	}
	return o.Result, nil
}

// Failed returns an outcome carrying err and no status.
func Failed(err error) Outcome {
	return Outcome{Err: err}
}

// Classify decodes body with dec (JSON when nil) and classifies it together
// with statusCode.
func Classify(statusCode int, body []byte, dec codec.Codec) Outcome {
	if dec == nil {
		dec = codec.JSON
	}
	out := Outcome{StatusCode: statusCode}

	var payload any
	if err := dec.Unmarshal(body, &payload); err != nil {
		out.Err = errors.MalformedResponse(statusCode, body, err)
		return out
	}

	switch {
	case statusCode >= 500:
		msg, _ := MessageOf(payload)
		out.Err = errors.ServerError(statusCode, msg, payload)
	case statusCode == 404:
		out.Err = errors.NotFound()
	case statusCode >= 400:
		if msg, ok := MessageOf(payload); ok {
			out.Err = errors.BadRequest(statusCode, msg)
		} else {
			out.Err = errors.ClientError(statusCode, payload)
		}
	case statusCode >= 200 && statusCode < 300:
		out.Result = payload
	default:
		out.Err = errors.UnexpectedStatus(statusCode, payload)
	}
	return out
}

// MessageOf returns the non-empty string message carried by a decoded
// object body.
func MessageOf(payload any) (string, bool) {
	var v any
	switch m := payload.(type) {
	case map[string]any:
		v = m[MessageField]
	case map[any]any:
		v = m[MessageField]
	default:
		return "", false
	}
	msg, ok := v.(string)
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}
