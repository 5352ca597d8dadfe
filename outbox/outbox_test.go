package outbox

import (
	"fmt"
	"testing"
)

func openTestOutbox(t *testing.T) *Outbox {
	t.Helper()
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open outbox: %v", err)
	}
	t.Cleanup(func() { o.Close() })
	return o
}

func TestPutGet(t *testing.T) {
	o := openTestOutbox(t)

	if err := o.Put(1, []byte("trade-1")); err != nil {
		t.Fatalf("put: %v", err)
	}

	rec, err := o.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateNew || string(rec.Payload) != "trade-1" || rec.Retries != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestStateTransitions(t *testing.T) {
	o := openTestOutbox(t)

	if err := o.Put(1, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := o.MarkSent(1); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	rec, _ := o.Get(1)
	if rec.State != StateSent || rec.Retries != 1 {
		t.Fatalf("after send: %+v", rec)
	}

	if err := o.MarkAcked(1); err != nil {
		t.Fatalf("mark acked: %v", err)
	}
	rec, _ = o.Get(1)
	if rec.State != StateAcked {
		t.Fatalf("after ack: %+v", rec)
	}
}

func TestScanPendingSkipsAcked(t *testing.T) {
	o := openTestOutbox(t)

	for seq := uint64(1); seq <= 5; seq++ {
		if err := o.Put(seq, []byte(fmt.Sprintf("t-%d", seq))); err != nil {
			t.Fatal(err)
		}
	}
	o.MarkSent(2)
	o.MarkAcked(2)
	o.MarkSent(4) // sent but unacked stays pending

	var got []uint64
	err := o.ScanPending(func(r *Record) error {
		got = append(got, r.Seq)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	want := []uint64{1, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("pending = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pending = %v, want %v", got, want)
		}
	}
}

func TestTruncateAcked(t *testing.T) {
	o := openTestOutbox(t)

	for seq := uint64(1); seq <= 4; seq++ {
		o.Put(seq, []byte("x"))
	}
	o.MarkSent(1)
	o.MarkAcked(1)
	o.MarkSent(3)
	o.MarkAcked(3)

	if err := o.TruncateAcked(); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	if _, err := o.Get(1); err == nil {
		t.Error("acked record 1 should be gone")
	}
	if rec, err := o.Get(2); err != nil || rec.State != StateNew {
		t.Errorf("pending record 2 must survive truncation: %v", err)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()

	o, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	o.Put(7, []byte("persist"))
	if err := o.Close(); err != nil {
		t.Fatal(err)
	}

	o, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer o.Close()

	rec, err := o.Get(7)
	if err != nil || string(rec.Payload) != "persist" {
		t.Fatalf("record lost across reopen: %v %+v", err, rec)
	}
}
