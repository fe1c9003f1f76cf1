package log

import (
	"testing"
	"time"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryState, "STATE"},
		{CategoryEdit, "EDIT"},
		{CategoryLag, "LAG"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range []Category{CategoryState, CategoryEdit, CategoryLag, CategoryError} {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}

	if got, ok := ParseCategory("edit"); !ok || got != CategoryEdit {
		t.Errorf("ParseCategory is not case-insensitive: %v, %v", got, ok)
	}
	if _, ok := ParseCategory("frame"); ok {
		t.Error("ParseCategory accepted an unknown name")
	}
}

func TestEncodeDecodeEditEvent(t *testing.T) {
	event := Event{
		Timestamp: time.Date(2026, 1, 28, 10, 0, 0, 123456789, time.UTC),
		RunID:     "run-1",
		ChannelID: "chan-1",
		Category:  CategoryEdit,
		MessageID: "msg-1",
		Edit: &EditEvent{
			Seconds: 59,
			Latency: 250 * time.Millisecond,
			Wait:    750 * time.Millisecond,
			Resent:  true,
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, event.Timestamp)
	}
	if decoded.Edit == nil {
		t.Fatal("Edit is nil")
	}
	if decoded.Edit.Latency != 250*time.Millisecond || !decoded.Edit.Resent {
		t.Errorf("Edit: got %+v", decoded.Edit)
	}
	if decoded.StateChange != nil || decoded.Lag != nil || decoded.Error != nil {
		t.Error("unexpected payloads after decode")
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected decode error")
	}
}
