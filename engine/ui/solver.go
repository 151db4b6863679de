package ui

// ===== Sizing =====

type SizeKind uint8

const (
	// SizeGrow takes a weighted share of the space left after fixed and
	// percent children. It is the zero value, so Size{} is Grow(1).
	SizeGrow SizeKind = iota
	SizeFixed
	SizePercent
)

// Size is one child's main-axis policy. Max == 0 means unbounded.
type Size struct {
	Kind  SizeKind
	Value float32 // pixels, fraction in [0..1], or grow weight
	Min   float32
	Max   float32
}

func Fixed(px float32) Size { return Size{Kind: SizeFixed, Value: px} }

// Percent takes frac (0..1) of the space left after gaps.
func Percent(frac float32) Size { return Size{Kind: SizePercent, Value: frac} }

// Grow takes a weighted share of the leftover space. Weights <= 0 count as 1.
func Grow(weight float32) Size { return Size{Kind: SizeGrow, Value: weight} }

func (s Size) Clamped(minPx, maxPx float32) Size {
	s.Min, s.Max = minPx, maxPx
	return s
}

func (s Size) weight() float32 {
	if s.Value <= 0 {
		return 1
	}
	return s.Value
}

func (s Size) clamp(v float32) (float32, int) {
	if s.Max > 0 && v > s.Max {
		return s.Max, 1
	}
	if v < s.Min {
		return s.Min, -1
	}
	return v, 0
}

// Solve resolves main-axis sizes for len(sizes) children sharing extent with
// gap between neighbours. Results go to out, which must be at least as long
// as sizes. It returns the minimum extent the children need: fixed sizes,
// declared minimums and gaps.
//
// Fixed and percent children take their clamped size. Grow children then
// split what is left by weight, flexbox style: each round every unfrozen
// child is clamped and the sign of the total violation picks who freezes.
// Positive freezes the children held up by their minimum, negative those
// held down by their maximum, zero freezes everyone. Frozen sizes leave
// the pool and the rest is shared out again.
func Solve(extent, gap float32, sizes []Size, out []float32) float32 {
	n := len(sizes)
	if n == 0 || len(out) < n || n > maxSolveChildren {
		return 0
	}
	out = out[:n]

	avail := max(0, extent-gap*float32(n-1))

	var frozen [maxSolveChildren]bool
	free := avail
	open := 0
	for i, s := range sizes {
		switch s.Kind {
		case SizeFixed:
			out[i], _ = s.clamp(max(0, s.Value))
		case SizePercent:
			out[i], _ = s.clamp(avail * clampf(s.Value, 0, 1))
		default:
			out[i] = 0
			open++
			continue
		}
		frozen[i] = true
		free -= out[i]
	}

	for open > 0 {
		var weight float32
		for i, s := range sizes {
			if !frozen[i] {
				weight += s.weight()
			}
		}
		share := max(0, free)
		var violation float32
		for i, s := range sizes {
			if frozen[i] {
				continue
			}
			want := share * s.weight() / weight
			out[i], _ = s.clamp(want)
			violation += out[i] - want
		}

		for i, s := range sizes {
			if frozen[i] {
				continue
			}
			_, dir := s.clamp(share * s.weight() / weight)
			switch {
			case violation == 0,
				violation > 0 && dir < 0,
				violation < 0 && dir > 0:
				frozen[i] = true
				free -= out[i]
				open--
			}
		}
	}

	return minExtent(gap, sizes)
}

func minExtent(gap float32, sizes []Size) float32 {
	if len(sizes) == 0 {
		return 0
	}
	total := gap * float32(len(sizes)-1)
	for _, s := range sizes {
		if s.Kind == SizeFixed {
			v, _ := s.clamp(max(0, s.Value))
			total += v
			continue
		}
		total += s.Min
	}
	return total
}
