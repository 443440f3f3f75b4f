package statemachine

import (
	"errors"

	"foodie-api/models"
)

// sequence is the forward-only order lifecycle. cancelled sits outside it as
// a side terminal reachable from any non-terminal state.
var sequence = []models.OrderStatus{
	models.StatusPending,
	models.StatusAccepted,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusPickedUp,
	models.StatusDelivered,
}

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "restaurant", "partner", "customer"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Restaurant drives the kitchen-side lifecycle
	{From: models.StatusPending, To: models.StatusAccepted, Actor: "restaurant"},
	{From: models.StatusAccepted, To: models.StatusPreparing, Actor: "restaurant"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "restaurant"},
	// Delivery partner takes over once the order is ready
	{From: models.StatusReady, To: models.StatusPickedUp, Actor: "partner"},
	{From: models.StatusPickedUp, To: models.StatusDelivered, Actor: "partner"},
	// Cancellation from any non-terminal state
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusPickedUp, To: models.StatusCancelled, Actor: "partner"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// Next returns the immediate successor in the forward sequence, or "" when
// the status is terminal or unknown.
func Next(status models.OrderStatus) models.OrderStatus {
	for i, s := range sequence {
		if s == status && i+1 < len(sequence) {
			return sequence[i+1]
		}
	}
	return ""
}

// IsTerminal reports whether no further transitions are possible.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// CanTransition checks the core rule: the target must be the immediate
// successor of the current status, or cancelled while not yet terminal.
// Actor permissions are checked separately by CanActorTransition.
func CanTransition(from, to models.OrderStatus) error {
	if to == models.StatusCancelled && !IsTerminal(from) {
		return nil
	}
	if next := Next(from); next != "" && next == to {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid next states: " + describeValidFrom(from),
	)
}

// CanActorTransition checks both the core rule and that the acting role is
// allowed to perform this particular step.
func CanActorTransition(from, to models.OrderStatus, actor string) error {
	if err := CanTransition(from, to); err != nil {
		return err
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"transition " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'",
	)
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
