// Package report defines the six-field game report record and its
// per-field byte ceilings.
package report

import "fmt"

// Field indexes one GameReport member. The numeric order is the wire
// order and is shared with the receiver.
type Field int

const (
	FieldReportName Field = iota
	FieldReportText
	FieldSenderName
	FieldSenderEmail
	FieldGameName
	FieldGameVersion

	NumFields = 6
)

func (f Field) String() string {
	switch f {
	case FieldReportName:
		return "report_name"
	case FieldReportText:
		return "report_text"
	case FieldSenderName:
		return "sender_name"
	case FieldSenderEmail:
		return "sender_email"
	case FieldGameName:
		return "game_name"
	case FieldGameVersion:
		return "game_version"
	default:
		return fmt.Sprintf("field_%d", int(f))
	}
}

// Byte ceilings per field, in wire order. Part of the protocol contract
// with the receiver: if these change, bump wire.ProtocolVersion.
var limits = [NumFields]int{
	FieldReportName:  100,
	FieldReportText:  5120,
	FieldSenderName:  100,
	FieldSenderEmail: 100,
	FieldGameName:    100,
	FieldGameVersion: 100,
}

// Limit returns the byte ceiling for one field.
func Limit(f Field) int {
	return limits[f]
}

// GameReport is one user-submitted report. Field contents are opaque
// bytes; UTF-8 by convention but never validated as such.
type GameReport struct {
	ReportName  string
	ReportText  string
	SenderName  string
	SenderEmail string // optional, may be empty
	GameName    string
	GameVersion string
}

// Fields returns the record members as raw bytes in wire order.
func (r *GameReport) Fields() [NumFields][]byte {
	return [NumFields][]byte{
		FieldReportName:  []byte(r.ReportName),
		FieldReportText:  []byte(r.ReportText),
		FieldSenderName:  []byte(r.SenderName),
		FieldSenderEmail: []byte(r.SenderEmail),
		FieldGameName:    []byte(r.GameName),
		FieldGameVersion: []byte(r.GameVersion),
	}
}

// FieldLimitError reports the earliest field whose byte length exceeds
// its ceiling.
type FieldLimitError struct {
	Field Field
	Size  int
	Limit int
}

func (e *FieldLimitError) Error() string {
	return fmt.Sprintf("report: field %s (%d) is %d bytes, limit is %d",
		e.Field, int(e.Field), e.Size, e.Limit)
}

// Validate checks every field against its byte ceiling, in wire order,
// and returns a FieldLimitError for the first field over. It performs
// no I/O.
func (r *GameReport) Validate() error {
	for i, b := range r.Fields() {
		f := Field(i)
		if len(b) > Limit(f) {
			return &FieldLimitError{Field: f, Size: len(b), Limit: Limit(f)}
		}
	}
	return nil
}
