package main

import (
	"bytes"
	"net/http"
	"os"
	osSignal "os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sendOnNotify(t *testing.T, sig os.Signal) {
	t.Helper()

	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})
	signalNotify = func(ch chan<- os.Signal, _ ...os.Signal) {
		go func() {
			ch <- sig
		}()
	}
}

func TestServeStopsOnSIGTERM(t *testing.T) {
	sendOnNotify(t, syscall.SIGTERM)

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	c, command := parseCLI(t, "--skip-env-files", "serve", "--port", "127.0.0.1:0")
	require.Equal(t, "serve", command)

	done := make(chan error, 1)
	go func() {
		var out bytes.Buffer
		done <- run(c, command, &out, logger)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not return after SIGTERM")
	}

	assert.Equal(t, 1, logs.FilterMessage("server listening").Len())
	assert.Equal(t, 1, logs.FilterMessage("shutting down server").Len())
	assert.Zero(t, logs.FilterMessage("graceful shutdown failed").Len())
}

func TestShutdownRunsServerHooks(t *testing.T) {
	sendOnNotify(t, os.Interrupt)

	server := &http.Server{}
	called := make(chan struct{}, 1)
	server.RegisterOnShutdown(func() {
		called <- struct{}{}
	})

	core, logs := observer.New(zap.InfoLevel)
	shutdown(server, 50*time.Millisecond, zap.New(core))

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatalf("expected server shutdown hook to run")
	}
	assert.Equal(t, 1, logs.FilterMessage("shutting down server").Len())
}
