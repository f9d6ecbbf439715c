package commands

import "roomchat/pkg/chat"

// Context carries the session state commands operate on.
type Context struct {
	Store *chat.Store
}
