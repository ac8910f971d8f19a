// Package audit persists intermediate pipeline output for later inspection.
// Nothing in the pipeline reads it back.
package audit

import (
	"errors"
	"time"
)

type Sink interface {
	Record(step string, payload any, at time.Time) error
}

type nopSink struct{}

func (nopSink) Record(string, any, time.Time) error { return nil }

// Nop discards every record.
func Nop() Sink {
	return nopSink{}
}

type multiSink []Sink

// Multi fans a record out to every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSink) Record(step string, payload any, at time.Time) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(step, payload, at); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
