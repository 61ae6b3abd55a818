//go:build !windows

package rollarr_test

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golift.io/rollarr"
	"golift.io/rollarr/mocks"
)

// ReloadOn is the glue between an external reload trigger (a signal) and a
// Roller. Signal delivery is process-wide, so this test is not parallel.
func TestReloadOn(t *testing.T) {
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	reloaded := make(chan struct{}, 1)
	mockRoller := mocks.NewMockRoller(mockCtrl)
	mockRoller.EXPECT().Reload().DoAndReturn(func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}

		return nil
	}).MinTimes(1)

	stop := rollarr.ReloadOn(mockRoller, syscall.SIGUSR1)
	defer stop()

	assert.NoError(syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("the signal did not trigger a reload")
	}
}
