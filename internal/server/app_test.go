package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gomate/internal/client/catalog"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestApp_RunStopsOnContextCancel(t *testing.T) {
	src, err := catalog.NewFixtureSource()
	require.NoError(t, err)

	app := NewApp("127.0.0.1:0", src, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestApp_RunReportsListenError(t *testing.T) {
	src, err := catalog.NewFixtureSource()
	require.NoError(t, err)

	app := NewApp("127.0.0.1:99999", src, logging.Nop())
	require.Error(t, app.Run(context.Background()))
}
