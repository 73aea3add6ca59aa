package main

import (
	"context"
	"testing"

	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/service"
)

func TestWorker(t *testing.T) {
	ctx := context.Background()
	jobs := make(chan model.Notice, 2)

	handle := enqueue(ctx, jobs)
	if err := handle(model.NewNotice(model.NoticeSuccess, "Contacto creado correctamente")); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	// payloads that are not notices are acknowledged and skipped
	if err := handle("garbage"); err != nil {
		t.Fatalf("expected nil for invalid payload, got %v", err)
	}
	close(jobs)

	worker := service.NewWorker(jobs, logNotice)
	worker.Start(ctx)

	delivered, failed := worker.Stats()
	if delivered != 1 || failed != 0 {
		t.Errorf("expected 1 delivered and 0 failed, got %d and %d", delivered, failed)
	}
}

func TestEnqueueStopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handle := enqueue(ctx, make(chan model.Notice))
	if err := handle(model.NewNotice(model.NoticeInfo, "x")); err == nil {
		t.Fatal("expected an error once the context is canceled")
	}
}
