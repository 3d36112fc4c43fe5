package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/jbweber/mvctl/internal/cdm"
)

// mockVolumeClient is a mock implementation of the VolumeClient interface for testing.
type mockVolumeClient struct {
	// Configurable behavior
	createFunc func(req cdm.CreateManagedVolumeRequest) (*cdm.ManagedVolume, error)
	idFunc     func(name string) (string, error)
	getFunc    func(id string) (*cdm.ManagedVolume, error)

	// Call tracking
	createCalls []cdm.CreateManagedVolumeRequest
	idCalls     []string
	getCalls    []string
}

// newMockVolumeClient creates a mock whose volume reports the given states
// in order, repeating the last one forever.
func newMockVolumeClient(states ...cdm.VolumeState) *mockVolumeClient {
	m := &mockVolumeClient{}

	m.createFunc = func(req cdm.CreateManagedVolumeRequest) (*cdm.ManagedVolume, error) {
		return &cdm.ManagedVolume{ID: "ManagedVolume:::1", Name: req.Name, State: "Creating"}, nil
	}

	m.idFunc = func(name string) (string, error) {
		return "ManagedVolume:::1", nil
	}

	m.getFunc = func(id string) (*cdm.ManagedVolume, error) {
		if len(states) == 0 {
			return nil, fmt.Errorf("no states configured")
		}
		i := len(m.getCalls) - 1
		if i >= len(states) {
			i = len(states) - 1
		}
		return testVolume(id, states[i]), nil
	}

	return m
}

func (m *mockVolumeClient) CreateManagedVolume(_ context.Context, req cdm.CreateManagedVolumeRequest) (*cdm.ManagedVolume, error) {
	m.createCalls = append(m.createCalls, req)
	return m.createFunc(req)
}

func (m *mockVolumeClient) ManagedVolumeID(_ context.Context, name string) (string, error) {
	m.idCalls = append(m.idCalls, name)
	return m.idFunc(name)
}

func (m *mockVolumeClient) GetManagedVolume(_ context.Context, id string) (*cdm.ManagedVolume, error) {
	m.getCalls = append(m.getCalls, id)
	return m.getFunc(id)
}

// testVolume returns a volume descriptor in state; exported volumes get two
// channels.
func testVolume(id string, state cdm.VolumeState) *cdm.ManagedVolume {
	vol := &cdm.ManagedVolume{
		ID:         id,
		Name:       "oradb1",
		State:      state,
		IsWritable: true,
	}
	if state == cdm.StateExported {
		vol.MainExport = &cdm.Export{
			IsActive: true,
			Channels: []cdm.Channel{
				{IPAddress: "10.0.0.1", MountPoint: "/mv/ch0"},
				{IPAddress: "10.0.0.2", MountPoint: "/mv/ch1"},
			},
		}
	}
	return vol
}

// fakeTimer is a backoff.Timer that fires immediately and records every
// requested wait, so the simulated elapsed time is the sum of starts.
type fakeTimer struct {
	c      chan time.Time
	starts []time.Duration
	now    time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{
		c:   make(chan time.Time, 1),
		now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeTimer) Start(d time.Duration) {
	f.starts = append(f.starts, d)
	f.now = f.now.Add(d)
	f.c <- f.now
}

func (f *fakeTimer) Stop() {}

func (f *fakeTimer) C() <-chan time.Time {
	return f.c
}

func (f *fakeTimer) elapsed() time.Duration {
	var total time.Duration
	for _, d := range f.starts {
		total += d
	}
	return total
}
