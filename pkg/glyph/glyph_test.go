package glyph

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitPlace(t *testing.T) {
	tests := []struct {
		place int
		want  int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{5, 4}, // 5%4 == 1 maps to the center alignment
		{6, 2},
		{7, 3},
		{8, 0},
		{9, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DigitPlace(tt.place), "place %d", tt.place)
	}
}

func TestDigitName(t *testing.T) {
	assert.Equal(t, "7_rightmost", DigitName('7', 1))
	assert.Equal(t, "7_right_align", DigitName('7', 2))
	assert.Equal(t, "7_with_colon", DigitName('7', 3))
	assert.Equal(t, "7_", DigitName('7', 4))
	assert.Equal(t, "7_", DigitName('7', 5))
	assert.Equal(t, "7", DigitName('7', 8), "place without alignment yields the bare digit")
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "0000", Digits(0))
	assert.Equal(t, "0005", Digits(5))
	assert.Equal(t, "0100", Digits(60))
	assert.Equal(t, "6101", Digits(3661))
	assert.Equal(t, "10000", Digits(6000))
	assert.Equal(t, "0000", Digits(-3))
}

func TestNamesZero(t *testing.T) {
	assert.Equal(t, []string{"0_", "0_with_colon", "0_right_align", "0_rightmost"}, Names(0))
}

func TestNamesWrapAround(t *testing.T) {
	// 166:40 has five digits, the leftmost at place 5
	names := Names(10000)
	require.Len(t, names, 5)
	assert.Equal(t, []string{"1_", "6_", "6_with_colon", "4_right_align", "0_rightmost"}, names)
}

func TestRendererText(t *testing.T) {
	r := NewRenderer(TextProvider{}, "")
	assert.Equal(t, "⏳0000", r.Render(0))
	assert.Equal(t, "⏳6101", r.Render(3661))
	assert.Equal(t, "⏳0959", r.Render(599))
}

func TestRendererMissingGlyphs(t *testing.T) {
	r := NewRenderer(MapProvider{"hourglass": "<:hourglass:1>"}, "hourglass")
	assert.Equal(t, "<:hourglass:1>:0_::0_with_colon::0_right_align::5_rightmost:", r.Render(5))
}

func TestRendererCustomIcon(t *testing.T) {
	p := MapProvider{"alarm": "A", "0_": "a", "0_with_colon": "b", "1_right_align": "c", "2_rightmost": "d"}
	r := NewRenderer(p, "alarm")
	assert.Equal(t, "Aabcd", r.Render(12))
}

func TestCacheLoadsOnce(t *testing.T) {
	calls := 0
	c := NewCache(func() (map[string]Symbol, error) {
		calls++
		return map[string]Symbol{"hourglass": "H"}, nil
	})

	assert.Equal(t, Symbol("H"), c.Lookup("hourglass"))
	assert.Equal(t, Missing("nope"), c.Lookup("nope"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())
}

func TestCacheRefreshKeepsTableOnError(t *testing.T) {
	fail := false
	c := NewCache(func() (map[string]Symbol, error) {
		if fail {
			return nil, errors.New("unavailable")
		}
		return map[string]Symbol{"1_": "one"}, nil
	})

	require.NoError(t, c.Refresh())
	fail = true
	assert.Error(t, c.Refresh())
	assert.Error(t, c.Err())
	assert.Equal(t, Symbol("one"), c.Lookup("1_"))
}

func TestCacheLoadFailure(t *testing.T) {
	c := NewCache(func() (map[string]Symbol, error) {
		return nil, errors.New("unavailable")
	})
	assert.Equal(t, Missing("hourglass"), c.Lookup("hourglass"))
	assert.Equal(t, 0, c.Len())
}

func TestCacheDoesNotReloadAfterFailure(t *testing.T) {
	var calls atomic.Int32
	fail := true
	c := NewCache(func() (map[string]Symbol, error) {
		calls.Add(1)
		if fail {
			return nil, errors.New("rate limited")
		}
		return map[string]Symbol{"hourglass": "H", "0_rightmost": "z"}, nil
	})
	r := NewRenderer(c, "")

	require.Error(t, c.Refresh())
	for i := 0; i < 3; i++ {
		r.Render(5)
	}
	assert.Equal(t, int32(1), calls.Load(), "renders after a failed load must not reload")
	assert.Equal(t, Missing("hourglass"), c.Lookup("hourglass"))

	// Only an explicit refresh retries
	fail = false
	require.NoError(t, c.Refresh())
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, Symbol("H"), c.Lookup("hourglass"))
	assert.NoError(t, c.Err())
}

func TestCacheFailedFirstLookupLoadsOnce(t *testing.T) {
	calls := 0
	c := NewCache(func() (map[string]Symbol, error) {
		calls++
		return nil, errors.New("unavailable")
	})

	c.Lookup("hourglass")
	c.Lookup("1_rightmost")
	c.Lookup("2_right_align")
	assert.Equal(t, 1, calls)
	assert.Error(t, c.Err())
}

func TestCacheConcurrentFirstLookupsShareLoad(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCache(func() (map[string]Symbol, error) {
		calls.Add(1)
		<-release
		return map[string]Symbol{"hourglass": "H"}, nil
	})

	var wg sync.WaitGroup
	results := make([]Symbol, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Lookup("hourglass")
		}(i)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, s := range results {
		assert.Equal(t, Symbol("H"), s)
	}
}
