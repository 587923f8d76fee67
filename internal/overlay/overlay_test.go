// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlay

import "testing"

func TestNewSeedsLayerZero(t *testing.T) {
	o := New("foo.c", []byte("original"))
	if string(o.Current()) != "original" {
		t.Errorf("Current() = %q, want original", o.Current())
	}
	if o.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", o.Depth())
	}
	if o.Path() != "foo.c" {
		t.Errorf("Path() = %q, want foo.c", o.Path())
	}
}

func TestPushShadowsPreviousLayer(t *testing.T) {
	o := New("foo.c", []byte("v0"))
	o.Push([]byte("v1"))
	o.Push([]byte("v2"))
	if string(o.Current()) != "v2" {
		t.Errorf("Current() = %q, want v2", o.Current())
	}
	if o.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", o.Depth())
	}
}

func TestPopRollsBackOneLayer(t *testing.T) {
	o := New("foo.c", []byte("v0"))
	o.Push([]byte("v1"))
	o.Pop()
	if string(o.Current()) != "v0" {
		t.Errorf("Current() = %q, want v0", o.Current())
	}
	if o.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", o.Depth())
	}
}

func TestPopOnOriginalLayerIsNoOp(t *testing.T) {
	o := New("foo.c", []byte("v0"))
	o.Pop()
	if string(o.Current()) != "v0" {
		t.Errorf("Current() = %q, want v0", o.Current())
	}
	if o.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", o.Depth())
	}
}
