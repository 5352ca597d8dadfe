package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"vela/api/grpcserver"
	pb "vela/api/pb"
	"vela/broadcast"
	"vela/config"
	"vela/marketdata"
	"vela/outbox"
	"vela/service"
	"vela/wal"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- WAL ----------------

	w, err := wal.Open(wal.Config{
		Dir:         cfg.WALDir,
		SegmentSize: cfg.WALSegmentSize,
	})
	if err != nil {
		log.Fatalf("WAL init failed: %v", err)
	}
	defer w.Close()

	// ---------------- Outbox ----------------

	ob, err := outbox.Open(cfg.OutboxDir)
	if err != nil {
		log.Fatalf("outbox init failed: %v", err)
	}
	defer ob.Close()

	// ---------------- Market data ----------------

	var levels *marketdata.Publisher
	if cfg.KafkaEnabled() {
		levels = marketdata.NewPublisher(cfg.KafkaBrokers, cfg.LevelsTopic)
		defer levels.Close()
	}

	// ---------------- Service ----------------

	svc := service.New(w, ob, levels)

	if err := svc.Recover(cfg.WALDir, cfg.SnapshotDir); err != nil {
		log.Fatalf("recovery failed: %v", err)
	}

	// ---------------- Background Jobs ----------------

	svc.StartSnapshotJob(ctx, cfg.SnapshotDir, cfg.SnapshotInterval)

	if cfg.KafkaEnabled() {
		bc, err := broadcast.New(ob, cfg.KafkaBrokers, cfg.TradesTopic, cfg.BroadcastInterval)
		if err != nil {
			log.Fatalf("broadcaster init failed: %v", err)
		}
		defer bc.Close()
		go bc.Run(ctx)
	}

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen failed: %v", err)
	}

	grpcSrv := grpc.NewServer()
	pb.RegisterOrderServiceServer(grpcSrv, grpcserver.NewServer(svc))

	go func() {
		<-ctx.Done()
		grpcSrv.GracefulStop()
	}()

	log.Printf("engine running on %s", cfg.GRPCAddr)

	if err := grpcSrv.Serve(lis); err != nil {
		log.Fatalf("gRPC server exited: %v", err)
	}
}
