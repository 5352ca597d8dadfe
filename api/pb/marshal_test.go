package pb

import "testing"

func TestCommandRoundTrip(t *testing.T) {
	in := &Command{
		Type:  CommandSubmit,
		Id:    42,
		Side:  1,
		Kind:  0,
		Flags: 2,
		Price: 10050,
		Qty:   7,
	}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Command
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Id != in.Id || out.Side != in.Side || out.Flags != in.Flags ||
		out.Price != in.Price || out.Qty != in.Qty || out.Type != in.Type {
		t.Fatalf("round trip mismatch: in=%+v out=%+v", in, out)
	}
}

func TestZeroValuesRoundTrip(t *testing.T) {
	in := &Command{Type: CommandCancel, Id: 1}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Command
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Qty != 0 || out.Price != 0 || out.Id != 1 {
		t.Fatalf("zero fields corrupted: %+v", out)
	}
}
