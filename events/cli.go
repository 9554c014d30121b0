package events

import "github.com/google/uuid"

type CommandLineEventType string

const CommandLineValidateEvent = CommandLineEventType("validate")

// CommandLineEvent is the payload the eav CLI sends when invoking the Lambda
// function directly.
type CommandLineEvent struct {
	EavCommand CommandLineEventType `json:"eavCommand"`
	Validate   *ValidateEvent       `json:"validate,omitempty"`
}

type ValidateEvent struct {
	BatchId   uuid.UUID `json:"batchId"`
	Addresses []string  `json:"addresses"`
}

// Failure describes one address that failed validation. Kind is the name of
// the address.Kind, such as "DomainNotFQDN".
type Failure struct {
	Address string `json:"address"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ValidateResponse struct {
	BatchId  uuid.UUID `json:"batchId"`
	NumValid int       `json:"numValid"`
	Failures []Failure `json:"failures,omitempty"`
}
