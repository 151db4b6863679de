package colors

import "testing"

func TestPackRoundTrip(t *testing.T) {
	p := Color{1, 0.5, 0, 1}.Pack()
	if p != 0xff8000ff {
		t.Fatalf("Pack: got %#08x, want 0xff8000ff", uint32(p))
	}
	c := p.Color()
	if c[0] != 1 || c[2] != 0 || c[3] != 1 {
		t.Errorf("Color: got %v", c)
	}
	if Red.Scale(2) != Red {
		t.Error("Scale must clamp to 1")
	}
}

func TestTextEncoding(t *testing.T) {
	b, _ := Hex(0x1a2b3c4d).MarshalText()
	if string(b) != "#1a2b3c4d" {
		t.Errorf("MarshalText: got %q", b)
	}

	tests := []struct {
		in      string
		want    RGBA
		wantErr bool
	}{
		{"#1a2b3c4d", 0x1a2b3c4d, false},
		{"ff0000", 0xff0000ff, false},
		{"#FFFFFF80", 0xffffff80, false},
		{"#fff", 0, true},
		{"#gg0000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got RGBA
			err := got.UnmarshalText([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %#08x, want %#08x", uint32(got), uint32(tt.want))
			}
		})
	}
}
