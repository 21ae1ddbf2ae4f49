package controller

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/halbor/gravity-sim/db"
	"github.com/halbor/gravity-sim/live"
	"github.com/halbor/gravity-sim/physics"
)

func TestRunner_Run_PersistsSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	storage := NewMockStorage(ctrl)
	storage.EXPECT().
		CreateRun(gomock.Any(), db.Run{G: 1e-4, Theta: 0, FrameTime: 0.016, Bodies: 4}).
		Return(uint(7), nil)
	storage.EXPECT().AppendSnapshot(gomock.Any(), uint(7), 2, gomock.Any()).Return(nil)
	storage.EXPECT().AppendSnapshot(gomock.Any(), uint(7), 4, gomock.Any()).Return(nil)
	storage.EXPECT().FinishRun(gomock.Any(), uint(7), 4).Return(nil)

	sim := physics.NewSimulation(physics.SimulationConfig{})
	bodies := physics.SpawnOrbit(3, 100, 10, 1e6, 1)
	stats, err := NewRunner(sim, storage, nil, 2).Run(context.Background(), bodies, 4)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(4, stats.Steps)
}

func TestRunner_Run_StopsOnCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	storage := NewMockStorage(ctrl)
	storage.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(uint(1), nil)
	storage.EXPECT().FinishRun(gomock.Any(), uint(1), 0).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sim := physics.NewSimulation(physics.SimulationConfig{})
	bodies := physics.SpawnOrbit(2, 100, 10, 1e6, 1)
	stats, err := NewRunner(sim, storage, nil, 1).Run(ctx, bodies, 100)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(0, stats.Steps)
}

type fakeBroadcaster struct {
	frames []live.Frame
}

func (f *fakeBroadcaster) Broadcast(frame live.Frame) error {
	f.frames = append(f.frames, frame)
	return nil
}

func TestRunner_Run_BroadcastsFrames(t *testing.T) {
	assert := assert.New(t)
	broadcaster := &fakeBroadcaster{}
	sim := physics.NewSimulation(physics.SimulationConfig{})
	bodies := physics.SpawnOrbit(2, 100, 10, 1e6, 1)
	stats, err := NewRunner(sim, nil, broadcaster, 1).Run(context.Background(), bodies, 3)
	assert.NoError(err)
	assert.Equal(3, stats.Steps)
	assert.Len(broadcaster.frames, 3)
	assert.Equal(1, broadcaster.frames[0].Step)
	assert.Equal(3, broadcaster.frames[2].Step)
	assert.Len(broadcaster.frames[0].Bodies, len(bodies))
}
