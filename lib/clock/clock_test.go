// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowStandsStill(t *testing.T) {
	c := Fake(epoch)
	if !c.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", c.Now(), epoch)
	}
	if !c.Now().Equal(c.Now()) {
		t.Fatal("fake time moved without Advance")
	}
}

func TestFakeAdvance(t *testing.T) {
	c := Fake(epoch)
	c.Advance(3 * time.Second)
	c.Advance(-time.Hour)
	if want := epoch.Add(3 * time.Second); !c.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", c.Now(), want)
	}
}

func TestFakeSet(t *testing.T) {
	c := Fake(epoch)
	target := epoch.Add(-24 * time.Hour)
	c.Set(target)
	if !c.Now().Equal(target) {
		t.Errorf("Now() = %v, want %v", c.Now(), target)
	}
}

func TestFakeConcurrentAdvance(t *testing.T) {
	c := Fake(epoch)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Millisecond)
			_ = c.Now()
		}()
	}
	wg.Wait()
	if want := epoch.Add(50 * time.Millisecond); !c.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", c.Now(), want)
	}
}

func TestRealAdvances(t *testing.T) {
	c := Real()
	first := c.Now()
	if c.Now().Before(first) {
		t.Error("real clock went backwards")
	}
}
