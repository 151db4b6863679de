package scratch

import "testing"

func TestChain(t *testing.T) {
	b := New(64)
	m := b.Mark()
	b.S("fps ").F(59.94, 1).C(' ').I(-3).S(" ").U(7).R('é').Bool(true).Hex(255).Pad(2, '.')
	if got, want := b.ViewFrom(m), "fps 59.9 -3 7étrueff.."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintf(t *testing.T) {
	tests := []struct {
		format string
		args   []any
		want   string
	}{
		{"HP %d/%d", []any{12, 40}, "HP 12/40"},
		{"%.2f ms", []any{float32(1.5)}, "1.50 ms"},
		{"%f", []any{2.0}, "2.000"},
		{"%s=%t", []any{"on", true}, "on=true"},
		{"%x %u", []any{uint32(255), uint8(9)}, "ff 9"},
		{"100%%", nil, "100%"},
		{"%q %d", []any{4}, "%q 4"},
		{"missing %d", nil, "missing "},
	}
	b := New(0)
	for _, tt := range tests {
		b.Reset()
		if got := b.Printf(tt.format, tt.args...); got != tt.want {
			t.Errorf("Printf(%q): got %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestViewsAliasTheBuffer(t *testing.T) {
	b := New(16)
	v := b.Printf("%d", 1)
	s := b.StringFrom(0)
	b.Reset()
	b.S("2")
	if v != "2" {
		t.Errorf("view: got %q, want it to follow the buffer", v)
	}
	if s != "1" {
		t.Errorf("copy: got %q", s)
	}

	b.Grow(100)
	if b.Cap() < 101 || b.Len() != 1 {
		t.Errorf("grow: len %d cap %d", b.Len(), b.Cap())
	}
}

func TestPrintfDoesNotAllocate(t *testing.T) {
	b := New(256)
	n := testing.AllocsPerRun(100, func() {
		b.Reset()
		b.S("frame ").I(42).S(" ").F(16.6, 1)
		_ = b.ViewFrom(0)
	})
	if n != 0 {
		t.Errorf("allocations per run: got %v, want 0", n)
	}
}
