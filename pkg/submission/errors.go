package submission

import "errors"

var (
	// ErrContractViolation is returned when a payload does not satisfy the
	// request schema.
	ErrContractViolation = errors.New("submission: payload violates contract")
	// ErrOperationNotFound is returned when the contract lacks the send
	// operation.
	ErrOperationNotFound = errors.New("submission: operation not found")
)
