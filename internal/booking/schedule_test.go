package booking

import (
	"testing"

	"github.com/ozanveral/movie-club-api/internal/domain"
)

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    domain.TimeOfDay
		end      domain.TimeOfDay
		wantKind RejectionKind
	}{
		{
			name:  "window inside operating hours",
			start: domain.NewTimeOfDay(14, 0),
			end:   domain.NewTimeOfDay(16, 0),
		},
		{
			name:  "window covering the whole day",
			start: domain.NewTimeOfDay(9, 0),
			end:   domain.NewTimeOfDay(22, 0),
		},
		{
			name:     "start before opening",
			start:    domain.NewTimeOfDay(8, 0),
			end:      domain.NewTimeOfDay(10, 0),
			wantKind: KindOutOfHours,
		},
		{
			name:     "end after closing",
			start:    domain.NewTimeOfDay(21, 0),
			end:      domain.NewTimeOfDay(23, 0),
			wantKind: KindOutOfHours,
		},
		{
			name:     "start one minute before opening",
			start:    domain.NewTimeOfDay(8, 59),
			end:      domain.NewTimeOfDay(10, 0),
			wantKind: KindOutOfHours,
		},
		{
			name:     "end one minute after closing",
			start:    domain.NewTimeOfDay(20, 0),
			end:      domain.NewTimeOfDay(22, 1),
			wantKind: KindOutOfHours,
		},
		{
			name:     "end before start",
			start:    domain.NewTimeOfDay(16, 0),
			end:      domain.NewTimeOfDay(14, 0),
			wantKind: KindOutOfHours,
		},
		{
			name:  "window starting exactly at opening",
			start: domain.NewTimeOfDay(9, 0),
			end:   domain.NewTimeOfDay(11, 0),
		},
		{
			name:  "window ending exactly at closing",
			start: domain.NewTimeOfDay(20, 0),
			end:   domain.NewTimeOfDay(22, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rejection := ValidateWindow(tt.start, tt.end)

			if tt.wantKind == "" {
				if rejection != nil {
					t.Fatalf("ValidateWindow(%v, %v) = %v, want nil", tt.start, tt.end, rejection)
				}
				return
			}

			if rejection == nil {
				t.Fatalf("ValidateWindow(%v, %v) = nil, want rejection %v", tt.start, tt.end, tt.wantKind)
			}

			if rejection.Kind != tt.wantKind {
				t.Errorf("ValidateWindow(%v, %v) kind = %v, want %v", tt.start, tt.end, rejection.Kind, tt.wantKind)
			}
		})
	}
}
