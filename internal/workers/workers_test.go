// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// orderWorker records Start and Stop calls into a shared slice.
type orderWorker struct {
	id       string
	calls    *[]string
	interval time.Duration
}

func (o *orderWorker) Start(_ context.Context, interval time.Duration) {
	o.interval = interval
	*o.calls = append(*o.calls, "start "+o.id)
}

func (o *orderWorker) Stop() {
	*o.calls = append(*o.calls, "stop "+o.id)
}

func TestWorkers_StartUsesConfiguredInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	refresh := mock.NewMockRefreshJob(ctrl)

	ctx := context.Background()
	refresh.EXPECT().Start(ctx, 30*time.Second)
	refresh.EXPECT().Stop()

	ws := NewWorkers(refresh, config.ClientWorkers{RefreshInterval: 30 * time.Second}, logger.Nop())
	ws.Start(ctx)
	assert.True(t, ws.Running())

	ws.Stop()
	assert.False(t, ws.Running())
}

func TestWorkers_Order(t *testing.T) {
	var calls []string
	ws := NewWorkers(nil, config.ClientWorkers{}, logger.Nop())
	ws.Add("a", &orderWorker{id: "a", calls: &calls}, time.Second)
	ws.Add("b", &orderWorker{id: "b", calls: &calls}, time.Second)

	ws.Start(context.Background())
	ws.Stop()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, calls)
}

func TestWorkers_StopWithoutStart(t *testing.T) {
	var calls []string
	ws := NewWorkers(nil, config.ClientWorkers{}, logger.Nop())
	ws.Add("a", &orderWorker{id: "a", calls: &calls}, time.Second)

	ws.Stop()
	ws.Stop()

	assert.Empty(t, calls)
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers(nil, config.ClientWorkers{}, logger.Nop())

	ws.Start(context.Background())
	ws.Stop()

	assert.False(t, ws.Running())
}

func TestWorkers_PassesInterval(t *testing.T) {
	var calls []string
	w := &orderWorker{id: "a", calls: &calls}
	ws := NewWorkers(nil, config.ClientWorkers{}, logger.Nop())
	ws.Add("a", w, 5*time.Minute)

	ws.Start(context.Background())

	assert.Equal(t, 5*time.Minute, w.interval)
}
