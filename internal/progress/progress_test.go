package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestCounter_ConcurrentAdvance(t *testing.T) {
	c := &Counter{}
	c.Start(100)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				c.Advance()
			}
		}()
	}
	wg.Wait()
	c.Finish()

	if c.Done() != 100 {
		t.Errorf("Done() = %d, want 100", c.Done())
	}
	if c.Total() != 100 {
		t.Errorf("Total() = %d, want 100", c.Total())
	}
	if !c.Finished() {
		t.Error("Finished() = false")
	}
}

func TestBar_Output(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)
	b.Start(3)
	b.Advance()
	b.Advance()
	b.Advance()
	b.Finish()

	out := buf.String()
	for _, want := range []string{"0/3 files", "1/3 files", "3/3 files"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output does not end with newline: %q", out)
	}
}

func TestBar_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)
	b.Start(0)
	b.Finish()
	if !strings.Contains(buf.String(), "0/0 files") {
		t.Errorf("output = %q", buf.String())
	}
}
