package main

import "testing"

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	if w, h, err := s.getSize(); w != 80 || h != 24 || err != nil {
		t.Fatalf("getSize = %d, %d, %v", w, h, err)
	}
	s.update(200, 60)
	if w, h, _ := s.getSize(); w != 200 || h != 60 {
		t.Fatalf("after update = %d, %d", w, h)
	}
}
