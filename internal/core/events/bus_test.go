package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nalharbi/inspection-management/internal/core/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("Bus", func() {
	var bus *events.Bus

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewBus(lg)
	})

	It("dispatches an event to subscribed handlers", func() {
		var (
			mu       sync.Mutex
			received []string
		)
		bus.Subscribe(events.EventTypeRoundCreated, func(ctx context.Context, event events.Event) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, event.EventID())
			return nil
		})

		event := events.NewRoundCreatedEvent("round-1", "manager-1", "Warehouse A")
		bus.Publish(context.Background(), event)

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return received
		}, time.Second).Should(ConsistOf(event.EventID()))
	})

	It("does not deliver events of other types", func() {
		called := make(chan struct{}, 1)
		bus.Subscribe(events.EventTypeManagerDeleted, func(ctx context.Context, event events.Event) error {
			called <- struct{}{}
			return nil
		})

		bus.Publish(context.Background(), events.NewRoundCreatedEvent("round-1", "manager-1", "Warehouse A"))
		Consistently(called, 50*time.Millisecond).ShouldNot(Receive())
	})

	It("stops synchronous dispatch at the first failing handler", func() {
		secondCalled := false
		bus.Subscribe(events.EventTypeManagerDeleted, func(ctx context.Context, event events.Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeManagerDeleted, func(ctx context.Context, event events.Event) error {
			secondCalled = true
			return nil
		})

		err := bus.PublishSync(context.Background(), events.NewManagerDeletedEvent("manager-1", 3))
		Expect(err).To(HaveOccurred())
		Expect(secondCalled).To(BeFalse())
	})

	It("carries the audit payload on the event", func() {
		event := events.NewManagerDeletedEvent("manager-1", 3)
		Expect(event.EventType()).To(Equal(events.EventTypeManagerDeleted))
		Expect(event.Payload()).To(HaveKeyWithValue("manager_id", "manager-1"))
		Expect(event.Payload()).To(HaveKeyWithValue("rounds_removed", int64(3)))
	})
})
