package handler

import (
	"bytes"
	"encoding/json"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/mbland/eav/events"
)

type EventType int

const (
	UnexpectedEvent EventType = iota - 1
	NullEvent
	ApiRequest
	CommandLineEvent
)

func (event EventType) String() string {
	switch event {
	case UnexpectedEvent:
		return "Unexpected"
	case NullEvent:
		return "Null"
	case ApiRequest:
		return "API Request"
	case CommandLineEvent:
		return "Command line"
	}
	return "Unknown"
}

type Event struct {
	Type             EventType
	ApiRequest       *awsevents.APIGatewayV2HTTPRequest
	CommandLineEvent *events.CommandLineEvent
}

// Inspired by:
// https://www.synvert-tcm.com/blog/handling-multiple-aws-lambda-event-types-with-go/
func (event *Event) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	} else if bytes.Contains(data, []byte(`"rawPath":`)) {
		event.Type = ApiRequest
		event.ApiRequest = &awsevents.APIGatewayV2HTTPRequest{}
		return json.Unmarshal(data, event.ApiRequest)
	} else if bytes.Contains(data, []byte(`"eavCommand":`)) {
		event.Type = CommandLineEvent
		event.CommandLineEvent = &events.CommandLineEvent{}
		return json.Unmarshal(data, event.CommandLineEvent)
	}
	event.Type = UnexpectedEvent
	return nil
}
