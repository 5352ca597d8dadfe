package wal

import "time"

// RecordType identifies the command a WAL entry carries.
type RecordType uint8

const (
	RecordSubmit RecordType = iota
	RecordCancel
	RecordModify
)

// Record is one durable WAL entry. Seq is the command sequence assigned
// by the service; Data is the protobuf-encoded command payload.
type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func NewRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}
