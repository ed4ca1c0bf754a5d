package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
	}{
		{"click", &Event{Seq: 1, Target: 7, Type: "click"}},
		{"input", &Event{Seq: 300, Target: 12, Type: "input", Value: "héllo"}},
		{"keydown", &Event{Seq: 2, Target: 3, Type: "keydown", Data: map[string]string{"key": "Enter", "shift": "true"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvent(EncodeEvent(tt.event))
			if err != nil {
				t.Fatalf("DecodeEvent() error = %v", err)
			}
			if diff := cmp.Diff(tt.event, got); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEventDataOrderStable(t *testing.T) {
	e := &Event{Type: "k", Data: map[string]string{"b": "2", "a": "1", "c": "3"}}
	first := string(EncodeEvent(e))
	for i := 0; i < 10; i++ {
		if string(EncodeEvent(e)) != first {
			t.Fatal("encoding depends on map iteration order")
		}
	}
}

func TestDecodeEventErrors(t *testing.T) {
	valid := EncodeEvent(&Event{Seq: 1, Target: 2, Type: "click", Data: map[string]string{"k": "v"}})
	for i := 0; i < len(valid); i++ {
		if _, err := DecodeEvent(valid[:i]); err == nil {
			t.Errorf("DecodeEvent(%d of %d bytes) should fail", i, len(valid))
		}
	}
	if _, err := DecodeEvent(append(append([]byte(nil), valid...), 0)); err == nil {
		t.Error("trailing byte should fail")
	}
}
