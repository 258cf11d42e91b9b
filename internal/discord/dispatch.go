package discord

import (
	"context"
	"log/slog"
)

// Mode selects the request sequence used to deliver a message.
type Mode int

const (
	// ModeChannel posts straight to a channel.
	ModeChannel Mode = iota
	// ModeDirectMessage opens a DM with a user, then posts to it.
	ModeDirectMessage
)

// ModeFor returns ModeDirectMessage when dm is set.
func ModeFor(dm bool) Mode {
	if dm {
		return ModeDirectMessage
	}
	return ModeChannel
}

func (m Mode) String() string {
	switch m {
	case ModeDirectMessage:
		return "dm"
	case ModeChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Sender is the part of Client used by Dispatch.
type Sender interface {
	OpenDM(ctx context.Context, recipientID string) (string, error)
	PostMessage(ctx context.Context, channelID, content string) error
}

// Dispatch delivers content to targetID and returns the channel it was posted to.
//
// In channel mode targetID is the channel. In DM mode targetID is taken as the
// recipient user ID and the message goes to the channel Discord returns for it.
// The first failure ends the run; a failed open step means nothing is posted.
func Dispatch(ctx context.Context, s Sender, mode Mode, targetID, content string) (string, error) {
	channelID := targetID

	if mode == ModeDirectMessage {
		slog.DebugContext(ctx, "opening DM channel", "recipient_id", targetID)
		id, err := s.OpenDM(ctx, targetID)
		if err != nil {
			return "", err
		}
		channelID = id
	}

	slog.DebugContext(ctx, "posting message", "mode", mode.String(), "channel_id", channelID, "bytes", len(content))
	if err := s.PostMessage(ctx, channelID, content); err != nil {
		return "", err
	}
	return channelID, nil
}
