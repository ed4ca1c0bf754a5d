package protocol

import (
	"fmt"
	"maps"
	"slices"
)

// Event is an interaction event sent by a viewer, addressed by node id.
type Event struct {
	Seq    uint64
	Target uint64
	Type   string
	Value  string
	Data   map[string]string
}

// EncodeEvent encodes e as a FrameEvent payload.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	EncodeEventTo(enc, e)
	return enc.Bytes()
}

// EncodeEventTo encodes e using the provided encoder. Data keys are
// written in sorted order.
func EncodeEventTo(enc *Encoder, e *Event) {
	enc.WriteUvarint(e.Seq)
	enc.WriteUvarint(e.Target)
	enc.WriteString(e.Type)
	enc.WriteString(e.Value)
	enc.WriteUvarint(uint64(len(e.Data)))
	for _, k := range slices.Sorted(maps.Keys(e.Data)) {
		enc.WriteString(k)
		enc.WriteString(e.Data[k])
	}
}

// DecodeEvent decodes a FrameEvent payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	e := &Event{}
	var err error
	if e.Seq, err = d.ReadUvarint(); err != nil {
		return nil, malformed("event", err)
	}
	if e.Target, err = d.ReadUvarint(); err != nil {
		return nil, malformed("event", err)
	}
	if e.Type, err = d.ReadString(); err != nil {
		return nil, malformed("event type", err)
	}
	if e.Value, err = d.ReadString(); err != nil {
		return nil, malformed("event value", err)
	}
	// Each entry takes at least two length bytes.
	n, err := d.ReadCount(2)
	if err != nil {
		return nil, malformed("event data", err)
	}
	if n > 0 {
		e.Data = make(map[string]string, n)
	}
	for i := 0; i < n; i++ {
		k, err := d.ReadString()
		if err != nil {
			return nil, malformed("event data key", err)
		}
		v, err := d.ReadString()
		if err != nil {
			return nil, malformed("event data value", err)
		}
		e.Data[k] = v
	}
	if !d.EOF() {
		return nil, malformed("event", fmt.Errorf("%d trailing bytes", d.Remaining()))
	}
	return e, nil
}
