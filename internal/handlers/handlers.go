package handlers

import (
	"vendra_back_end/internal/checkout"
	"vendra_back_end/internal/notify"
)

var (
	registry *checkout.Registry
	notifier notify.Notifier
)

// Setup branche les collaborateurs des handlers (appelé une fois au démarrage)
func Setup(reg *checkout.Registry, n notify.Notifier) {
	registry = reg
	notifier = n
}
