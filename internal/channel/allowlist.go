package channel

import (
	"strings"

	"github.com/flemzord/walletclaw/pkg/message"
)

// AllowList controls which users are permitted to interact with a channel.
// The bot holds pre-authorized wallet credentials, so an empty or nil
// AllowList denies everyone.
type AllowList struct {
	users map[string]struct{}
}

// NewAllowList creates an AllowList with O(1) lookups. Keys are trimmed and
// lowercased at construction time so that IsAllowed can use direct map lookups.
func NewAllowList(users []string) *AllowList {
	a := &AllowList{
		users: make(map[string]struct{}, len(users)),
	}
	for _, u := range users {
		a.users[normalize(u)] = struct{}{}
	}
	return a
}

// IsAllowed reports whether the message sender is permitted, matching
// either the sender ID or the username.
func (a *AllowList) IsAllowed(msg message.InboundMessage) bool {
	if a == nil || len(a.users) == 0 {
		return false
	}

	if _, ok := a.users[normalize(msg.Sender.ID)]; ok {
		return true
	}
	if msg.Sender.Username != "" {
		if _, ok := a.users[normalize(msg.Sender.Username)]; ok {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
