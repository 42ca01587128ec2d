package report

import (
	"errors"
	"strings"
	"testing"
)

func sampleReport() GameReport {
	return GameReport{
		ReportName:  "r",
		ReportText:  "t",
		SenderName:  "n",
		SenderEmail: "e@e",
		GameName:    "g",
		GameVersion: "1",
	}
}

func TestValidateAcceptsExactLimits(t *testing.T) {
	rep := GameReport{
		ReportName:  strings.Repeat("a", 100),
		ReportText:  strings.Repeat("b", 5120),
		SenderName:  strings.Repeat("c", 100),
		SenderEmail: strings.Repeat("d", 100),
		GameName:    strings.Repeat("e", 100),
		GameVersion: strings.Repeat("f", 100),
	}
	if err := rep.Validate(); err != nil {
		t.Fatalf("report at exact limits must validate: %v", err)
	}
}

func TestValidateAcceptsEmptyEmail(t *testing.T) {
	rep := sampleReport()
	rep.SenderEmail = ""
	if err := rep.Validate(); err != nil {
		t.Fatalf("empty email must validate: %v", err)
	}
}

func TestValidateReportsEachFieldOverLimit(t *testing.T) {
	for f := FieldReportName; f <= FieldGameVersion; f++ {
		rep := sampleReport()
		over := strings.Repeat("x", Limit(f)+1)
		switch f {
		case FieldReportName:
			rep.ReportName = over
		case FieldReportText:
			rep.ReportText = over
		case FieldSenderName:
			rep.SenderName = over
		case FieldSenderEmail:
			rep.SenderEmail = over
		case FieldGameName:
			rep.GameName = over
		case FieldGameVersion:
			rep.GameVersion = over
		}
		err := rep.Validate()
		var limitErr *FieldLimitError
		if !errors.As(err, &limitErr) {
			t.Fatalf("field %s: expected FieldLimitError, got %v", f, err)
		}
		if limitErr.Field != f {
			t.Fatalf("field %s: reported field %s", f, limitErr.Field)
		}
		if limitErr.Size != Limit(f)+1 || limitErr.Limit != Limit(f) {
			t.Fatalf("field %s: unexpected sizes %+v", f, limitErr)
		}
	}
}

func TestValidateReportsEarliestFieldFirst(t *testing.T) {
	rep := sampleReport()
	rep.ReportText = strings.Repeat("x", 5121)
	rep.GameName = strings.Repeat("x", 101)
	err := rep.Validate()
	var limitErr *FieldLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected FieldLimitError, got %v", err)
	}
	if limitErr.Field != FieldReportText {
		t.Fatalf("expected earliest field report_text, got %s", limitErr.Field)
	}
}

func TestFieldLimitsAreByteLengths(t *testing.T) {
	rep := sampleReport()
	// 34 four-byte runes: 136 bytes but only 34 characters.
	rep.SenderName = strings.Repeat("\U0001F600", 34)
	err := rep.Validate()
	var limitErr *FieldLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected FieldLimitError for 136-byte name, got %v", err)
	}
	if limitErr.Field != FieldSenderName || limitErr.Size != 136 {
		t.Fatalf("unexpected limit error: %+v", limitErr)
	}
}

func TestFieldsWireOrder(t *testing.T) {
	rep := sampleReport()
	fields := rep.Fields()
	want := []string{"r", "t", "n", "e@e", "g", "1"}
	for i, b := range fields {
		if string(b) != want[i] {
			t.Fatalf("field %d: got %q want %q", i, string(b), want[i])
		}
	}
}

func TestFieldNames(t *testing.T) {
	names := map[Field]string{
		FieldReportName:  "report_name",
		FieldReportText:  "report_text",
		FieldSenderName:  "sender_name",
		FieldSenderEmail: "sender_email",
		FieldGameName:    "game_name",
		FieldGameVersion: "game_version",
	}
	for f, want := range names {
		if f.String() != want {
			t.Fatalf("field %d: got %q want %q", int(f), f.String(), want)
		}
	}
}
