package testutil

import (
	"fitfocus/internal/fitfocus"
)

// ServiceFixture bundles a Service with the doubles behind it.
type ServiceFixture struct {
	Service *fitfocus.Service
	Store   *FailingStore
	Advisor *FakeAdvisor
	Clock   *StubClock
	IDs     *StubIDGenerator
}

// NewServiceFixture wires a Service to a memory-backed FailingStore, a
// FakeAdvisor answering reply, FixedClock and sequential IDs.
func NewServiceFixture(reply string) *ServiceFixture {
	f := &ServiceFixture{
		Store:   NewFailingStore(),
		Advisor: NewFakeAdvisor(reply),
		Clock:   FixedClock(),
		IDs:     NewStubIDGenerator(),
	}
	f.Service = fitfocus.NewService(f.Store, f.Advisor, fitfocus.NewNopLogger(), f.Clock, f.IDs)
	return f
}
