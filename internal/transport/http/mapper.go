package http

import (
	"encoding/json"

	"github.com/orgchat/orgchat-server/internal/core"
	"github.com/orgchat/orgchat-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeSend:
		var send proto.SendData
		if err := json.Unmarshal(inbound.Data, &send); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:       core.CommandSendMessage,
			ReceiverID: send.ReceiverID,
			Text:       send.Text,
		}, nil, nil
	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:       core.CommandSetTyping,
			ReceiverID: typing.ReceiverID,
			IsTyping:   typing.IsTyping,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventOnlineSnapshot:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameOnlineUsers,
			Data: proto.EventOnlineUsers{
				UserIDs: event.UserIDs,
			},
		}
	case core.EventPresenceChanged:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNamePresence,
			Data: proto.EventPresence{
				UserID:   event.User.ID,
				Username: event.User.Username,
				Online:   event.Online,
			},
		}
	case core.EventMessageDelivered:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameMessage,
			Data:  messageToWire(event.Message),
		}
	case core.EventMessageAck:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameMessageSent,
			Data:  messageToWire(event.Message),
		}
	case core.EventTypingChanged:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNameTyping,
			Data: proto.EventTyping{
				UserID:   event.User.ID,
				Username: event.User.Username,
				IsTyping: event.IsTyping,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func messageToWire(msg core.Message) proto.EventMessage {
	return proto.EventMessage{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		ReceiverID: msg.ReceiverID,
		Text:       msg.Body,
		TS:         msg.CreatedAt.Unix(),
	}
}
