package ui

import (
	"context"
	"testing"
	"time"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/ui/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func mockSpinnerFactory() spinner.Model {
	return spinner.New()
}

var homePrompt = models.Prompt{User: "user", Host: "linux", Path: "~"}

func TestReadInput_ReturnsUserInput(t *testing.T) {
	channels := NewUIChannels()
	ui := NewUI(channels, config.DefaultConfig(), mockSpinnerFactory)
	ctx := context.Background()
	expected := "ls -la"

	go func() {
		select {
		case req := <-channels.InputReq:
			assert.Equal(t, homePrompt, req.Prompt)
			assert.Equal(t, []string{"pwd"}, req.History)
			channels.InputResp <- expected
		case <-time.After(time.Second):
			t.Error("Timeout waiting for input request")
		}
	}()

	result, err := ui.ReadInput(ctx, InputRequest{Prompt: homePrompt, History: []string{"pwd"}})
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestReadInput_ContextCancelled(t *testing.T) {
	channels := NewUIChannels()
	ui := NewUI(channels, config.DefaultConfig(), mockSpinnerFactory)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := ui.ReadInput(ctx, InputRequest{Prompt: homePrompt})
	assert.Equal(t, context.Canceled, err)
	assert.Empty(t, result)
}

func TestReadInput_CancelledWhileWaiting(t *testing.T) {
	channels := NewUIChannels()
	ui := NewUI(channels, config.DefaultConfig(), mockSpinnerFactory)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-channels.InputReq
		cancel()
	}()

	_, err := ui.ReadInput(ctx, InputRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteStatus(t *testing.T) {
	channels := NewUIChannels()
	ui := NewUI(channels, config.DefaultConfig(), mockSpinnerFactory)

	ui.WriteStatus(models.PhaseReady, "Imported 3 files")

	select {
	case msg := <-channels.StatusChan:
		assert.Equal(t, models.PhaseReady, msg.Phase)
		assert.Equal(t, "Imported 3 files", msg.Message)
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for status update")
	}
}

func TestWriteOutput_SendsOutput(t *testing.T) {
	channels := NewUIChannels()
	ui := NewUI(channels, config.DefaultConfig(), mockSpinnerFactory)

	ui.WriteOutput(Output{Text: "boom", Failed: true})

	assert.Equal(t, Output{Text: "boom", Failed: true}, <-channels.OutputChan)
}

func TestClear_SendsSignal(t *testing.T) {
	channels := NewUIChannels()
	ui := NewUI(channels, config.DefaultConfig(), mockSpinnerFactory)

	ui.Clear()

	select {
	case <-channels.ClearChan:
	default:
		t.Fatal("expected a clear signal")
	}
}

func TestWriteStatus_DropsWhenFull(t *testing.T) {
	channels := NewUIChannels()
	ui := NewUI(channels, config.DefaultConfig(), mockSpinnerFactory)

	for i := 0; i < cap(channels.StatusChan)+5; i++ {
		ui.WriteStatus(models.PhaseReady, "x")
	}

	assert.Len(t, channels.StatusChan, cap(channels.StatusChan))
}
