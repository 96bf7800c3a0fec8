package protocomb_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/protocomb/protocomb"
	"github.com/protocomb/protocomb/codec"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	want := person{
		Name:   "Grace",
		Age:    46,
		Emails: []string{"grace@navy.example", "grace@eckert.example"},
	}

	emails := make([]codec.Encoder, len(want.Emails))
	for i, e := range want.Emails {
		emails[i] = codec.StringValue(e)
	}
	data, err := protocomb.Marshal(
		codec.NewField(1, codec.StringValue(want.Name)),
		codec.NewField(2, codec.Int32Value(want.Age)),
		codec.RepeatedField(3, emails),
	)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got, err := protocomb.Unmarshal(data, personType())
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalInvalidInput(t *testing.T) {
	// A lone continuation byte is not a valid tag.
	if _, err := protocomb.Unmarshal([]byte{0x80}, personType()); err == nil {
		t.Error("Unmarshal of malformed bytes succeeded, want error")
	}

	// Required name missing.
	data, err := protocomb.Marshal(codec.NewField(2, codec.Int32Value(1)))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := protocomb.Unmarshal(data, personType()); !errors.Is(err, codec.ErrMissingRequiredField) {
		t.Errorf("Unmarshal error = %v, want %v", err, codec.ErrMissingRequiredField)
	}
}

func TestMarshalPropagatesFieldErrors(t *testing.T) {
	if _, err := protocomb.Marshal(codec.NewField(0, codec.Int32Value(1))); err == nil {
		t.Error("Marshal with field number 0 succeeded, want error")
	}
}
