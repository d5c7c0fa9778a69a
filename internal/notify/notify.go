// Package notify is the server-side analog of the user-visible toast channel:
// milestone and failure messages flow through an explicitly injected Notifier
// rather than an ambient singleton.
package notify

import "log"

type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func NewLogNotifier() LogNotifier { return LogNotifier{} }

func (LogNotifier) Success(msg string) { log.Printf("notify success: %s", msg) }
func (LogNotifier) Info(msg string)    { log.Printf("notify info: %s", msg) }
func (LogNotifier) Error(msg string)   { log.Printf("notify error: %s", msg) }

// Nop discards notifications.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Info(string)    {}
func (Nop) Error(string)   {}
