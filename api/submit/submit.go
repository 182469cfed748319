package submit

import (
	"context"
	"errors"
	"strings"
	"time"

	"PickEm/api/bracket"
)

const (
	// FailureMessage is shown when a submission fails without a server message.
	FailureMessage = "Error saving picks"

	SuccessDuration = 2 * time.Second
	FailureDuration = 5 * time.Second
)

var ErrNoTransport = errors.New("no submission transport configured")

// Response is the server's answer to a submission.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Transport delivers a submission to whatever stores picks.
type Transport interface {
	Submit(ctx context.Context, sub bracket.Submission) (Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, sub bracket.Submission) (Response, error)

func (f TransportFunc) Submit(ctx context.Context, sub bracket.Submission) (Response, error) {
	return f(ctx, sub)
}

// Outcome is a submission result ready to show to the user.
type Outcome struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
	Err      error         `json:"-"`
}

// Interpret turns a transport result into a user-facing outcome. Failures
// always carry a readable message.
func Interpret(resp Response, err error) Outcome {
	if err != nil {
		return Outcome{Message: FailureMessage, Duration: FailureDuration, Err: err}
	}
	msg := strings.TrimSpace(resp.Message)
	if !resp.Success {
		if msg == "" {
			msg = FailureMessage
		}
		return Outcome{Message: msg, Duration: FailureDuration}
	}
	return Outcome{Success: true, Message: msg, Duration: SuccessDuration}
}

// Notifier displays outcomes.
type Notifier interface {
	Notify(Outcome)
}

// Submitter sends collected picks and relays the outcome to a Notifier.
// Notifier may be nil.
type Submitter struct {
	Transport Transport
	Notifier  Notifier
}

// Send submits synchronously.
func (s *Submitter) Send(ctx context.Context, sub bracket.Submission) Outcome {
	var out Outcome
	if s.Transport == nil {
		out = Interpret(Response{}, ErrNoTransport)
	} else {
		out = Interpret(s.Transport.Submit(ctx, sub))
	}
	if s.Notifier != nil {
		s.Notifier.Notify(out)
	}
	return out
}

// Go submits in the background. sub is a value snapshot, so the bracket it
// came from may keep changing while the request is in flight. The returned
// channel receives exactly one outcome.
func (s *Submitter) Go(ctx context.Context, sub bracket.Submission) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		done <- s.Send(ctx, sub)
	}()
	return done
}
