//go:build linux
// +build linux

package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/genricoloni/ledboard/internal/monitor/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type powerConfig bool

func (c powerConfig) PowerControlEnabled() bool { return bool(c) }

func newTestPower(client DBusClient) *DisplayPower {
	p := NewDisplayPower(zap.NewNop(), powerConfig(true))
	p.connect = func() (DBusClient, error) { return client, nil }
	return p
}

// TestSetPower_Toggle walks the panel on, off and on again, checking every bus call.
func TestSetPower_Toggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockDBusClient(ctrl)
	gomock.InOrder(
		client.EXPECT().SetProperty(displayConfigDest, displayConfigPath, powerSaveModeProp, powerSaveOn).Return(nil),
		client.EXPECT().Call(screenSaverDest, screenSaverPath, "org.freedesktop.ScreenSaver.Inhibit", inhibitApp, inhibitReason).
			Return([]interface{}{uint32(42)}, nil),
		client.EXPECT().Call(screenSaverDest, screenSaverPath, "org.freedesktop.ScreenSaver.UnInhibit", uint32(42)).
			Return(nil, nil),
		client.EXPECT().SetProperty(displayConfigDest, displayConfigPath, powerSaveModeProp, powerSaveOff).Return(nil),
		client.EXPECT().SetProperty(displayConfigDest, displayConfigPath, powerSaveModeProp, powerSaveOn).Return(nil),
		client.EXPECT().Call(screenSaverDest, screenSaverPath, "org.freedesktop.ScreenSaver.Inhibit", inhibitApp, inhibitReason).
			Return([]interface{}{uint32(43)}, nil),
		client.EXPECT().Call(screenSaverDest, screenSaverPath, "org.freedesktop.ScreenSaver.UnInhibit", uint32(43)).
			Return(nil, nil),
		client.EXPECT().Close().Return(nil),
	)

	p := newTestPower(client)
	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	for _, on := range []bool{true, true, false, false, true} {
		if err := p.SetPower(ctx, on); err != nil {
			t.Fatalf("SetPower(%v): unexpected error: %v", on, err)
		}
	}

	if err := p.Stop(ctx); err != nil {
		t.Errorf("unexpected stop error: %v", err)
	}
}

func TestSetPower_Errors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockDBusClient)
	}{
		{
			name: "Power Save Mode Rejected",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().SetProperty(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("no such interface"))
				m.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]interface{}{uint32(1)}, nil)
			},
		},
		{
			name: "Inhibit Fails",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().SetProperty(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("service unknown"))
			},
		},
		{
			name: "Invalid Cookie Type",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().SetProperty(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]interface{}{"not-a-cookie"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(client)

			p := newTestPower(client)
			_ = p.Start(context.Background())

			if err := p.SetPower(context.Background(), true); err == nil {
				t.Fatal("expected error")
			}
			// The failed state is remembered, no retry storm on every tick
			if err := p.SetPower(context.Background(), true); err != nil {
				t.Errorf("repeated request should be a no-op, got %v", err)
			}
		})
	}
}

func TestDisplayPower_WithoutBus(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		connect func() (DBusClient, error)
	}{
		{
			name:    "Disabled By Configuration",
			enabled: false,
			connect: func() (DBusClient, error) {
				t.Error("bus must not be contacted when disabled")
				return nil, nil
			},
		},
		{
			name:    "Bus Unavailable",
			enabled: true,
			connect: func() (DBusClient, error) { return nil, errors.New("no session bus") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewDisplayPower(zap.NewNop(), powerConfig(tt.enabled))
			p.connect = tt.connect
			ctx := context.Background()

			if err := p.Start(ctx); err != nil {
				t.Fatalf("start should not fail: %v", err)
			}
			if err := p.SetPower(ctx, true); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err := p.SetPower(ctx, false); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err := p.Stop(ctx); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
