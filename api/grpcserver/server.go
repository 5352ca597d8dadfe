// Package grpcserver adapts OrderService to the gRPC command surface.
package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vela/api/pb"
	"vela/orderbook"
	"vela/service"
)

type Server struct {
	pb.UnimplementedOrderServiceServer
	svc *service.OrderService
}

func NewServer(svc *service.OrderService) *Server {
	return &Server{svc: svc}
}

func (s *Server) SubmitOrder(ctx context.Context, req *pb.SubmitOrderRequest) (*pb.SubmitOrderResponse, error) {
	res, err := s.svc.Submit(
		req.Id,
		orderbook.Side(req.Side),
		orderbook.Kind(req.Kind),
		orderbook.Flags(req.Flags),
		req.Price,
		req.Qty,
	)
	if err != nil {
		return nil, rpcError(err)
	}
	return &pb.SubmitOrderResponse{
		Seq:       res.Seq,
		Filled:    res.Filled,
		Remaining: res.Remaining,
		Resting:   res.Resting,
	}, nil
}

func (s *Server) CancelOrder(ctx context.Context, req *pb.CancelOrderRequest) (*pb.CancelOrderResponse, error) {
	if err := s.svc.Cancel(req.Id); err != nil {
		return nil, rpcError(err)
	}
	return &pb.CancelOrderResponse{}, nil
}

func (s *Server) ModifyOrder(ctx context.Context, req *pb.ModifyOrderRequest) (*pb.ModifyOrderResponse, error) {
	if err := s.svc.Modify(req.Id, req.Qty, req.Price); err != nil {
		return nil, rpcError(err)
	}
	return &pb.ModifyOrderResponse{}, nil
}

func (s *Server) Depth(ctx context.Context, req *pb.DepthRequest) (*pb.DepthResponse, error) {
	entries := s.svc.Depth(orderbook.Side(req.Side), int(req.Levels))
	resp := &pb.DepthResponse{
		Levels: make([]*pb.DepthLevel, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Levels = append(resp.Levels, &pb.DepthLevel{Price: e.Price, Qty: e.Qty})
	}
	return resp, nil
}

func (s *Server) TopOfBook(ctx context.Context, req *pb.TopOfBookRequest) (*pb.TopOfBookResponse, error) {
	resp := &pb.TopOfBookResponse{}
	if price, ok := s.svc.BestBid(); ok {
		resp.BidPrice = price
		resp.HasBid = true
	}
	if price, ok := s.svc.BestAsk(); ok {
		resp.AskPrice = price
		resp.HasAsk = true
	}
	return resp, nil
}

// rpcError maps engine sentinel errors to gRPC status codes.
func rpcError(err error) error {
	switch {
	case errors.Is(err, orderbook.ErrDuplicateOrder):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, orderbook.ErrUnknownOrder):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, orderbook.ErrInvalidQuantity), errors.Is(err, orderbook.ErrInvalidPrice):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, orderbook.ErrUnfillable):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
