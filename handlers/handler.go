package handlers

import (
	"go.uber.org/zap"

	"foodie-api/orders"
	"foodie-api/store"
)

// Handler carries the injected store and lifecycle manager. Handlers own no
// business rules: they parse typed requests, call the core, and map errors.
type Handler struct {
	store  *store.Store
	orders *orders.Manager
	log    *zap.Logger
}

func New(s *store.Store, m *orders.Manager, log *zap.Logger) *Handler {
	return &Handler{store: s, orders: m, log: log}
}
