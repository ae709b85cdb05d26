package render

import (
	"context"
	"errors"
	"testing"

	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

type fakeComposer struct {
	calls int
	err   error
}

func (f *fakeComposer) Compose(_ context.Context, snap domain.Snapshot) (string, error) {
	f.calls++
	return "/tmp/frame.jpg", f.err
}

type fakePresenter struct {
	paths []string
	err   error
}

func (f *fakePresenter) Present(_ context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

func page(start int, names ...string) domain.Snapshot {
	people := make([]domain.Person, len(names))
	for i, n := range names {
		people[i] = domain.Person{Name: n}
	}
	return domain.Snapshot{
		Loaded:    true,
		MonitorOn: true,
		State:     domain.DisplayState{Mode: domain.ModeBirthday, PageStartIndex: start},
		Visible:   people,
	}
}

func TestSurface_RendersOnlyChanges(t *testing.T) {
	composer := &fakeComposer{}
	presenter := &fakePresenter{}
	s := NewSurface(zap.NewNop(), composer, presenter)
	ctx := context.Background()

	video := domain.Snapshot{Loaded: true, MonitorOn: true, State: domain.DisplayState{Mode: domain.ModeVideo}}
	videoNext := video
	videoNext.State.CurrentVideoIndex = 2
	videoNext.State.ActiveSlot = domain.SlotB

	steps := []struct {
		name  string
		snap  domain.Snapshot
		calls int
	}{
		{"Loading", domain.Snapshot{MonitorOn: true}, 1},
		{"First Page", page(0, "A", "B"), 2},
		{"Same Page Again", page(0, "A", "B"), 2},
		{"Next Page", page(6, "C"), 3},
		{"Roster Edited On Same Page", page(6, "C2"), 4},
		{"Video", video, 5},
		{"Next Clip Keeps Backdrop", videoNext, 5},
		{"Night", domain.Snapshot{Loaded: true}, 6},
		{"Still Night", domain.Snapshot{Loaded: true, State: domain.DisplayState{Mode: domain.ModeBirthday}}, 6},
	}

	for _, st := range steps {
		if err := s.Render(ctx, st.snap); err != nil {
			t.Fatalf("%s: unexpected error: %v", st.name, err)
		}
		if composer.calls != st.calls {
			t.Errorf("%s: expected %d compositions, got %d", st.name, st.calls, composer.calls)
		}
	}

	if len(presenter.paths) != 6 {
		t.Errorf("expected 6 presented frames, got %d", len(presenter.paths))
	}
}

func TestSurface_RetriesAfterFailure(t *testing.T) {
	tests := []struct {
		name      string
		composer  *fakeComposer
		presenter *fakePresenter
	}{
		{"Compose Fails", &fakeComposer{err: errors.New("disk full")}, &fakePresenter{}},
		{"Present Fails", &fakeComposer{}, &fakePresenter{err: errors.New("no display")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(zap.NewNop(), tt.composer, tt.presenter)
			snap := page(0, "A")

			if err := s.Render(context.Background(), snap); err == nil {
				t.Fatal("expected error")
			}
			_ = s.Render(context.Background(), snap)

			if tt.composer.calls != 2 {
				t.Errorf("failed frame should be retried, got %d compositions", tt.composer.calls)
			}
		})
	}
}
