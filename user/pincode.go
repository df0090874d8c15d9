package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Pincode is a postal code that arrived either as a JSON string or as a JSON
// number. The kind is kept so the value is written back to the table the way
// it was sent: strings as S, numbers as N with their literal text.
type Pincode struct {
	value   string
	numeric bool
}

// StringPincode returns a pincode held as a string.
func StringPincode(s string) Pincode {
	return Pincode{value: s}
}

// NumericPincode returns a pincode held as a number. The text must be a valid
// JSON number.
func NumericPincode(n json.Number) (Pincode, error) {
	if _, err := n.Float64(); err != nil {
		return Pincode{}, fmt.Errorf("invalid numeric pincode %q: %w", n, err)
	}

	return Pincode{value: n.String(), numeric: true}, nil
}

// String returns the pincode text.
func (p Pincode) String() string {
	return p.value
}

// IsNumeric reports whether the pincode arrived as a JSON number.
func (p Pincode) IsNumeric() bool {
	return p.numeric
}

func (p *Pincode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode pincode: %w", err)
		}

		*p = StringPincode(s)

		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var v any
	if err := decoder.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode pincode: %w", err)
	}

	n, ok := v.(json.Number)
	if !ok {
		return errors.New("pincode must be a string or a number")
	}

	parsed, err := NumericPincode(n)
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

func (p Pincode) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(p.value), nil
	}

	return json.Marshal(p.value)
}

// MarshalDynamoDBAttributeValue implements the attributevalue.Marshaler
// interface.
//
//nolint:ireturn // Must return interface to implement attributevalue.Marshaler
func (p Pincode) MarshalDynamoDBAttributeValue() (dynamodbtypes.AttributeValue, error) {
	if p.numeric {
		return &dynamodbtypes.AttributeValueMemberN{Value: p.value}, nil
	}

	return &dynamodbtypes.AttributeValueMemberS{Value: p.value}, nil
}
