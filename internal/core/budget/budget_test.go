package budget

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func ts(t time.Time) *time.Time { return &t }

func openFund(min, max float64) Fund {
	return Fund{
		TicketMin:  f64(min),
		TicketMax:  f64(max),
		WindowFrom: ts(testNow.AddDate(-1, 0, 0)),
		WindowTo:   ts(testNow.AddDate(1, 0, 0)),
	}
}

func TestFit_NoFundsIsZero(t *testing.T) {
	got := Fit(Ask{Min: f64(200_000), Max: f64(800_000)}, nil, testNow)
	if got != 0 {
		t.Fatalf("no funds must score exactly 0, got %v", got)
	}
}

func TestFit_UnknownAskIsZero(t *testing.T) {
	got := Fit(Ask{}, []Fund{openFund(100_000, 1_000_000)}, testNow)
	if got != 0 {
		t.Fatalf("fully unknown ask must score exactly 0, got %v", got)
	}
}

func TestFit_OverlappingAskWithOpenWindow(t *testing.T) {
	// ask [200k, 800k] against a fund [150k, 1M], in window, 50% dry powder:
	// overlap 15 + window 3 + 2*0.5 = 19
	fund := openFund(150_000, 1_000_000)
	fund.Total = f64(10_000_000)
	fund.Uncommitted = f64(5_000_000)

	got := Fit(Ask{Min: f64(200_000), Max: f64(800_000)}, []Fund{fund}, testNow)
	if math.Abs(got-19) > 1e-9 {
		t.Fatalf("overlapping in-window fund should score 19, got %v", got)
	}
}

func TestRangeScore(t *testing.T) {
	tests := []struct {
		name string
		ask  Ask
		fund Fund
		want float64
	}{
		{
			name: "overlap full credit",
			ask:  Ask{Min: f64(200_000), Max: f64(800_000)},
			fund: Fund{TicketMin: f64(150_000), TicketMax: f64(1_000_000)},
			want: 15,
		},
		{
			name: "touching bounds still overlap",
			ask:  Ask{Min: f64(100_000), Max: f64(150_000)},
			fund: Fund{TicketMin: f64(150_000), TicketMax: f64(300_000)},
			want: 15,
		},
		{
			name: "ask below fund scales by askMax/fundMin",
			ask:  Ask{Min: f64(50_000), Max: f64(100_000)},
			fund: Fund{TicketMin: f64(200_000), TicketMax: f64(500_000)},
			want: 15 * 100_000 / 200_000,
		},
		{
			name: "ask above fund scales by fundMax/askMin",
			ask:  Ask{Min: f64(2_000_000), Max: f64(5_000_000)},
			fund: Fund{TicketMin: f64(100_000), TicketMax: f64(500_000)},
			want: 15 * 500_000 / 2_000_000,
		},
		{
			name: "partial knowledge uses nearer bound ratio",
			ask:  Ask{Max: f64(400_000)},
			fund: Fund{TicketMin: f64(800_000)},
			want: 15 * 400_000 / 800_000,
		},
		{
			name: "unknown fund bounds contribute zero",
			ask:  Ask{Min: f64(200_000), Max: f64(800_000)},
			fund: Fund{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rangeScore(tt.ask, tt.fund)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("rangeScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailabilityScore(t *testing.T) {
	closed := Fund{
		WindowFrom: ts(testNow.AddDate(-2, 0, 0)),
		WindowTo:   ts(testNow.AddDate(-1, 0, 0)),
		Total:      f64(1_000_000),
	}
	if got := availabilityScore(closed, testNow); got != 0 {
		t.Fatalf("closed window with no dry powder should score 0, got %v", got)
	}

	open := openFund(0, 0)
	open.Total = f64(1_000_000)
	open.Uncommitted = f64(1_000_000)
	if got := availabilityScore(open, testNow); math.Abs(got-5) > 1e-9 {
		t.Fatalf("open window and full dry powder should score 5, got %v", got)
	}

	noTotal := openFund(0, 0)
	noTotal.Uncommitted = f64(500_000)
	if got := availabilityScore(noTotal, testNow); got != windowBonus {
		t.Fatalf("unknown total must skip dry powder credit, got %v", got)
	}
}

func TestInWindow_HalfOpenBounds(t *testing.T) {
	fromOnly := Fund{WindowFrom: ts(testNow.AddDate(0, -1, 0))}
	if !inWindow(fromOnly, testNow) {
		t.Fatalf("missing end bound should be treated as unbounded")
	}
	noWindow := Fund{}
	if inWindow(noWindow, testNow) {
		t.Fatalf("fund without any window is not open")
	}
}

func TestFit_TakesBestFund(t *testing.T) {
	weak := Fund{TicketMin: f64(5_000_000), TicketMax: f64(10_000_000)}
	strong := openFund(100_000, 1_000_000)
	strong.Total = f64(2_000_000)
	strong.Uncommitted = f64(1_000_000)

	ask := Ask{Min: f64(200_000), Max: f64(800_000)}
	got := Fit(ask, []Fund{weak, strong}, testNow)
	want := Fit(ask, []Fund{strong}, testNow)
	if got != want {
		t.Fatalf("fit must take the best fund: got %v, want %v", got, want)
	}
	if got <= Fit(ask, []Fund{weak}, testNow) {
		t.Fatalf("best fund should beat the weak one")
	}
}

func TestFit_NeverExceedsMax(t *testing.T) {
	fund := openFund(1, 1_000_000_000)
	fund.Total = f64(1)
	fund.Uncommitted = f64(100) // over-committed data still clamps to 1
	got := Fit(Ask{Min: f64(10), Max: f64(20)}, []Fund{fund}, testNow)
	if got > MaxScore {
		t.Fatalf("fit above ceiling: %v", got)
	}
}
