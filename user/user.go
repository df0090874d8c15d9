// Package user holds the inbound event and the stored record for the
// add-to-db function, along with the mapping between the two.
package user

// Attribute names of a stored user record.
const (
	IDAttr       = "id"
	UserNameAttr = "user_name"
	PincodeAttr  = "pincode"
)

// Event is the payload delivered to the function. A key that is absent from
// the JSON object, or set to null, decodes to a nil field.
type Event struct {
	Email    *string  `json:"email"`
	UserName *string  `json:"user_name"`
	Pincode  *Pincode `json:"pincode"`
}

// Record is a user as stored in the table. ID is the user's email address
// and is the table's partition key.
type Record struct {
	ID       string  `json:"id"        dynamodbav:"id"`
	UserName string  `json:"user_name" dynamodbav:"user_name"`
	Pincode  Pincode `json:"pincode"   dynamodbav:"pincode"`
}

// NewRecord maps an event onto the record that replaces any earlier record
// with the same email. Fields are checked in the order email, user_name,
// pincode and the first missing one is reported as a [MissingFieldError].
func NewRecord(event Event) (Record, error) {
	if event.Email == nil {
		return Record{}, NewMissingFieldError("email")
	}

	if event.UserName == nil {
		return Record{}, NewMissingFieldError("user_name")
	}

	if event.Pincode == nil {
		return Record{}, NewMissingFieldError("pincode")
	}

	return Record{
		ID:       *event.Email,
		UserName: *event.UserName,
		Pincode:  *event.Pincode,
	}, nil
}
