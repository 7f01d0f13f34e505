// uvbus-demo wires the in-process bus end to end: config, logger, a
// loopback bus, one subscriber and one publisher.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"uvbus/pkg/config"
	"uvbus/pkg/observability"
	"uvbus/pkg/payload"
	"uvbus/pkg/transport"
	"uvbus/pkg/transport/loopback"
	"uvbus/pkg/uri"
	"uvbus/pkg/uuid"
)

func main() {
	cfgPath := flag.String("config", "", "path to uvbus config yaml")
	count := flag.Int("count", 5, "messages to publish")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		fatalf("setup logger: %v", err)
	}
	defer logger.Sync()

	bus := loopback.NewBus(loopback.WithQueueSize(cfg.Bus.QueueSize), loopback.WithLogger(logger))
	defer bus.Close()

	topic := uri.UUri{
		AuthorityName:  cfg.Authority,
		UeID:           cfg.UeID,
		UeVersionMajor: cfg.UeVersionMajor,
		ResourceID:     0x8000,
	}

	sub := bus.Attach(uri.UUri{AuthorityName: cfg.Authority, UeID: cfg.UeID + 1, UeVersionMajor: 1})
	handle, err := sub.RegisterListener(topic, func(msg *transport.Message) {
		logger.Info("received",
			zap.Stringer("id", msg.Attributes.ID),
			zap.Stringer("source", msg.Attributes.Source),
			zap.ByteString("body", msg.Payload.Bytes()))
	})
	if err != nil {
		fatalf("register listener: %v", err)
	}
	defer handle.Release()

	pub := bus.Attach(uri.UUri{AuthorityName: cfg.Authority, UeID: cfg.UeID, UeVersionMajor: cfg.UeVersionMajor})
	gen := uuid.Default()
	for i := 0; i < *count; i++ {
		body, err := payload.FromJSON(map[string]any{"seq": i, "ts": time.Now().UnixMilli()})
		if err != nil {
			fatalf("build payload: %v", err)
		}
		msg := &transport.Message{
			Attributes: transport.Attributes{
				ID:     gen.Build(),
				Type:   transport.MessagePublish,
				Source: pub.DefaultSource(),
				Sink:   topic,
			},
			Payload: body,
		}
		if st := pub.Send(msg); !st.IsOK() {
			logger.Warn("send failed", zap.String("status", st.Error()))
		}
	}

	// let the dispatch goroutine drain before shutdown
	time.Sleep(200 * time.Millisecond)
}

func fatalf(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
