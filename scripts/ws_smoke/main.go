package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/orgchat/orgchat-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	token := flag.String("token", "", "JWT obtained from /api/login")
	receiver := flag.Int64("to", 0, "receiver user id")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	if *token == "" {
		return fmt.Errorf("missing -token (register or login via the REST API first)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr+"?token="+*token, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if *receiver != 0 {
		payload, marshalErr := json.Marshal(proto.SendData{ReceiverID: *receiver, Text: *text})
		if marshalErr != nil {
			return fmt.Errorf("marshal send: %w", marshalErr)
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeSend, Data: payload}); writeErr != nil {
			return fmt.Errorf("send: %w", writeErr)
		}
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received outbound: type=%s", outbound.Type)
		if outbound.Event != "" {
			fmt.Printf(" event=%s", outbound.Event)
		}
		fmt.Println()

		if outbound.Error != nil {
			fmt.Printf("Error: %s (%s)\n", outbound.Error.Code, outbound.Error.Msg)
			return fmt.Errorf("server error: %s", outbound.Error.Code)
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}

		switch outbound.Event {
		case proto.EventNameOnlineUsers:
			var evt proto.EventOnlineUsers
			if unmarshalErr := json.Unmarshal(raw, &evt); unmarshalErr == nil {
				fmt.Printf("Online: %v\n", evt.UserIDs)
			}
			if *receiver == 0 {
				// Nothing to send, the snapshot is enough for a smoke run.
				return nil
			}
		case proto.EventNameMessageSent:
			var evt proto.EventMessage
			if unmarshalErr := json.Unmarshal(raw, &evt); unmarshalErr != nil {
				fmt.Printf("Raw data: %s\n", string(raw))
				return fmt.Errorf("unmarshal ack: %w", unmarshalErr)
			}
			fmt.Printf("Ack: id=%d receiver=%d text=%q ts=%d\n", evt.ID, evt.ReceiverID, evt.Text, evt.TS)
			return nil
		case proto.EventNamePresence:
			var evt proto.EventPresence
			if unmarshalErr := json.Unmarshal(raw, &evt); unmarshalErr == nil {
				fmt.Printf("Presence: user=%s online=%v\n", evt.Username, evt.Online)
			}
		default:
			// keep looping for the ack
		}
	}
}
