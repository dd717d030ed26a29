package components

import (
	"strings"
	"testing"

	"dayspend/internal/tui/theme"
)

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{80, 3},
		{7, 2},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}

	if got := LayoutRow(50, 0); got != nil {
		t.Errorf("LayoutRow with n=0 should return nil, got %v", got)
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height should match tallest card: got %d, want %d", got, tallLines)
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(50); got != 46 {
		t.Errorf("CardInnerWidth(50) = %d, want 46", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) should clamp to 10, got %d", got)
	}
}

func TestSparklineLength(t *testing.T) {
	theme.SetActive("flexoki-dark")

	if got := Sparkline(nil, theme.Active.Blue); got != "" {
		t.Errorf("empty values should render nothing, got %q", got)
	}

	values := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	out := Sparkline(values, theme.Active.Blue)
	runeCount := 0
	for _, r := range out {
		if r >= '▁' && r <= '█' {
			runeCount++
		}
	}
	if runeCount != len(values) {
		t.Errorf("sparkline has %d block runes, want %d", runeCount, len(values))
	}
}

func TestSparklineAllZeros(t *testing.T) {
	// Peak of zero must not divide by zero.
	out := Sparkline([]float64{0, 0, 0}, theme.Active.Blue)
	if !strings.Contains(out, "▁▁▁") {
		t.Errorf("all-zero sparkline should render baseline blocks, got %q", out)
	}
}

func TestTabVisualWidth(t *testing.T) {
	for _, tab := range Tabs {
		active := TabVisualWidth(tab, true)
		inactive := TabVisualWidth(tab, false)
		if active != len(tab.Name) {
			t.Errorf("active %s width = %d, want %d", tab.Name, active, len(tab.Name))
		}
		want := len(tab.Name) + 2
		if tab.KeyPos < 0 {
			want++
		}
		if inactive != want {
			t.Errorf("inactive %s width = %d, want %d", tab.Name, inactive, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('t'); got != 1 {
		t.Errorf("TabIdxByKey('t') = %d, want 1", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
