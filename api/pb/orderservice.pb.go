// Package pb holds the wire messages for the order service. The schema
// of record is orderservice.proto; the Go types are maintained by hand
// in the legacy message form (struct tags carry the field layout) and
// marshal through google.golang.org/protobuf via protoadapt.
package pb

import "fmt"

// Command types carried in Command.Type.
const (
	CommandSubmit uint32 = 0
	CommandCancel uint32 = 1
	CommandModify uint32 = 2
)

// Command is the WAL payload for one engine command.
type Command struct {
	Type  uint32 `protobuf:"varint,1,opt,name=type"`
	Id    uint64 `protobuf:"varint,2,opt,name=id"`
	Side  uint32 `protobuf:"varint,3,opt,name=side"`
	Kind  uint32 `protobuf:"varint,4,opt,name=kind"`
	Flags uint32 `protobuf:"varint,5,opt,name=flags"`
	Price int64  `protobuf:"varint,6,opt,name=price"`
	Qty   int64  `protobuf:"varint,7,opt,name=qty"`
}

func (m *Command) Reset()         { *m = Command{} }
func (m *Command) String() string { return fmt.Sprintf("%+v", *m) }
func (*Command) ProtoMessage()    {}

type SubmitOrderRequest struct {
	Id    uint64 `protobuf:"varint,1,opt,name=id"`
	Side  uint32 `protobuf:"varint,2,opt,name=side"`
	Kind  uint32 `protobuf:"varint,3,opt,name=kind"`
	Flags uint32 `protobuf:"varint,4,opt,name=flags"`
	Price int64  `protobuf:"varint,5,opt,name=price"`
	Qty   int64  `protobuf:"varint,6,opt,name=qty"`
}

func (m *SubmitOrderRequest) Reset()         { *m = SubmitOrderRequest{} }
func (m *SubmitOrderRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*SubmitOrderRequest) ProtoMessage()    {}

type SubmitOrderResponse struct {
	Seq       uint64 `protobuf:"varint,1,opt,name=seq"`
	Filled    int64  `protobuf:"varint,2,opt,name=filled"`
	Remaining int64  `protobuf:"varint,3,opt,name=remaining"`
	Resting   bool   `protobuf:"varint,4,opt,name=resting"`
}

func (m *SubmitOrderResponse) Reset()         { *m = SubmitOrderResponse{} }
func (m *SubmitOrderResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*SubmitOrderResponse) ProtoMessage()    {}

type CancelOrderRequest struct {
	Id uint64 `protobuf:"varint,1,opt,name=id"`
}

func (m *CancelOrderRequest) Reset()         { *m = CancelOrderRequest{} }
func (m *CancelOrderRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*CancelOrderRequest) ProtoMessage()    {}

type CancelOrderResponse struct{}

func (m *CancelOrderResponse) Reset()         { *m = CancelOrderResponse{} }
func (m *CancelOrderResponse) String() string { return "{}" }
func (*CancelOrderResponse) ProtoMessage()    {}

type ModifyOrderRequest struct {
	Id    uint64 `protobuf:"varint,1,opt,name=id"`
	Qty   int64  `protobuf:"varint,2,opt,name=qty"`
	Price int64  `protobuf:"varint,3,opt,name=price"`
}

func (m *ModifyOrderRequest) Reset()         { *m = ModifyOrderRequest{} }
func (m *ModifyOrderRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*ModifyOrderRequest) ProtoMessage()    {}

type ModifyOrderResponse struct{}

func (m *ModifyOrderResponse) Reset()         { *m = ModifyOrderResponse{} }
func (m *ModifyOrderResponse) String() string { return "{}" }
func (*ModifyOrderResponse) ProtoMessage()    {}

type DepthRequest struct {
	Side   uint32 `protobuf:"varint,1,opt,name=side"`
	Levels int32  `protobuf:"varint,2,opt,name=levels"`
}

func (m *DepthRequest) Reset()         { *m = DepthRequest{} }
func (m *DepthRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*DepthRequest) ProtoMessage()    {}

type DepthLevel struct {
	Price int64 `protobuf:"varint,1,opt,name=price"`
	Qty   int64 `protobuf:"varint,2,opt,name=qty"`
}

func (m *DepthLevel) Reset()         { *m = DepthLevel{} }
func (m *DepthLevel) String() string { return fmt.Sprintf("%+v", *m) }
func (*DepthLevel) ProtoMessage()    {}

type DepthResponse struct {
	Levels []*DepthLevel `protobuf:"bytes,1,rep,name=levels"`
}

func (m *DepthResponse) Reset()         { *m = DepthResponse{} }
func (m *DepthResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*DepthResponse) ProtoMessage()    {}

type TopOfBookRequest struct{}

func (m *TopOfBookRequest) Reset()         { *m = TopOfBookRequest{} }
func (m *TopOfBookRequest) String() string { return "{}" }
func (*TopOfBookRequest) ProtoMessage()    {}

type TopOfBookResponse struct {
	BidPrice int64 `protobuf:"varint,1,opt,name=bid_price"`
	HasBid   bool  `protobuf:"varint,2,opt,name=has_bid"`
	AskPrice int64 `protobuf:"varint,3,opt,name=ask_price"`
	HasAsk   bool  `protobuf:"varint,4,opt,name=has_ask"`
}

func (m *TopOfBookResponse) Reset()         { *m = TopOfBookResponse{} }
func (m *TopOfBookResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*TopOfBookResponse) ProtoMessage()    {}
