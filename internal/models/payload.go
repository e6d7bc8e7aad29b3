package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mpesa-gateway/internal/shared/validators"
)

var ErrPayloadNotObject = errors.New("request body must be a JSON object")

// MissingFieldsError lists the required fields absent (or null) in a payload.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// Payload is a JSON object forwarded to Daraja verbatim.
type Payload map[string]any

// Reference returns the caller's reference, read from "reference" then "Reference".
func (p Payload) Reference() *string {
	return optionalString(firstPresent(p, "reference", "Reference"))
}

// STKPushPayload is the validated view of a Lipa Na M-Pesa Online (STK push) request.
type STKPushPayload struct {
	Phone  *json.RawMessage `json:"phone" validate:"required"`
	Amount *json.RawMessage `json:"amount" validate:"required"`
}

// OpenPayload is the view of operations whose body is passed through without required fields.
type OpenPayload struct{}

// RequestLogPayload is the body of a manually recorded REQUEST entry.
type RequestLogPayload struct {
	API              *string          `json:"api" validate:"required"`
	Reference        *string          `json:"reference"`
	TransactionID    *string          `json:"transactionId"`
	PaymentRequestID *string          `json:"paymentRequestId"`
	RequestPayload   *json.RawMessage `json:"requestPayload" validate:"required"`
}

// ResponseLogPayload is the body of a manually recorded RESPONSE entry.
type ResponseLogPayload struct {
	API              *string          `json:"api" validate:"required"`
	Reference        *string          `json:"reference"`
	TransactionID    *string          `json:"transactionId"`
	PaymentRequestID *string          `json:"paymentRequestId"`
	StatusCode       *int             `json:"statusCode"`
	Status           *string          `json:"status"`
	RequestPayload   *json.RawMessage `json:"requestPayload"`
	ResponsePayload  *json.RawMessage `json:"responsePayload" validate:"required"`
}

// CallbackPayload is the body of a signed provider callback.
type CallbackPayload struct {
	EventType        *string          `json:"eventType"`
	Payload          *json.RawMessage `json:"payload" validate:"required"`
	TransactionID    *string          `json:"transactionId"`
	PaymentRequestID *string          `json:"paymentRequestId"`
	API              *string          `json:"api"`
	Reference        *string          `json:"reference"`
	StatusCode       *int             `json:"statusCode"`
	Status           *string          `json:"status"`
}

// OperationRequest pairs the forwarded body with the operation's typed, validated view.
type OperationRequest struct {
	Operation Operation
	Shape     any
	Body      Payload
}

// NewPayloadShape returns an empty typed view for the operation's body.
func (op Operation) NewPayloadShape() any {
	switch op {
	case OperationSTKPush:
		return &STKPushPayload{}
	default:
		return &OpenPayload{}
	}
}

// NewOperationRequest decodes body as a JSON object and validates it against the
// operation's payload shape. An empty body is treated as {}.
func NewOperationRequest(op Operation, body []byte) (*OperationRequest, error) {
	if !op.IsValid() {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	body = normalizeBody(body)

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrPayloadNotObject
		}
		return nil, fmt.Errorf("invalid json body: %w", err)
	}
	if payload == nil {
		return nil, ErrPayloadNotObject
	}

	shape := op.NewPayloadShape()
	if err := DecodeShape(body, shape); err != nil {
		return nil, err
	}

	return &OperationRequest{Operation: op, Shape: shape, Body: payload}, nil
}

var payloadValidator = validators.NewJSON()

// DecodeShape unmarshals body into shape and enforces its required fields.
func DecodeShape(body []byte, shape any) error {
	body = normalizeBody(body)
	if err := json.Unmarshal(body, shape); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "" {
			return ErrPayloadNotObject
		}
		return fmt.Errorf("invalid json body: %w", err)
	}
	if err := payloadValidator.Struct(shape); err != nil {
		if missing := validators.MissingFields(err); len(missing) > 0 {
			return &MissingFieldsError{Fields: missing}
		}
		return err
	}
	return nil
}

// RawJSON decodes an optional raw JSON value into its generic Go form.
func RawJSON(raw *json.RawMessage) (any, error) {
	if raw == nil {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(*raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func normalizeBody(body []byte) []byte {
	if len(bytes.TrimSpace(body)) == 0 {
		return []byte("{}")
	}
	return body
}

// firstPresent returns the first value under keys that is set and truthy
// (not null, false, 0 or the empty string).
func firstPresent(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case nil:
			continue
		case bool:
			if !val {
				continue
			}
		case string:
			if val == "" {
				continue
			}
		case float64:
			if val == 0 {
				continue
			}
		case int:
			if val == 0 {
				continue
			}
		case json.Number:
			if val == "" || val == "0" {
				continue
			}
		}
		return v
	}
	return nil
}

func optionalString(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return &val
	default:
		s := fmt.Sprint(val)
		return &s
	}
}

// asObject returns v as a JSON object when it is one.
func asObject(v any) map[string]any {
	switch obj := v.(type) {
	case Payload:
		return obj
	case map[string]any:
		return obj
	default:
		return nil
	}
}
