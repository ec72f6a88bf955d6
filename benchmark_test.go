package nature

import "testing"

// setupBenchWorld creates a World with n boxes on a grid, every tenth one
// moving diagonally.
func setupBenchWorld(n int) *World {
	w := NewWorld(NewRegistry(nil), WH{1280, 720})
	for i := 0; i < n; i++ {
		e := newBox("box", XY{(i % 100) * 40, (i / 100) * 40}, WH{32, 32}, CollideBounds)
		if i%10 == 0 {
			e.SetVelocity(XY{1500, 1500})
		}
		w.Add(e)
	}
	return w
}

// --- Update Benchmarks ---

func BenchmarkUpdate_1000Entities(b *testing.B) {
	w := setupBenchWorld(1000)
	w.Update(16, InputSnapshot{}) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Update(16, InputSnapshot{})
	}
}

func BenchmarkUpdate_InViewport_10000Entities(b *testing.B) {
	w := setupBenchWorld(10000)
	for _, c := range w.Root().Children() {
		c.SetUpdatePredicate(UpdateInViewport)
		c.SetVelocity(XY{})
	}
	w.Update(16, InputSnapshot{})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Update(16, InputSnapshot{})
	}
}

// --- Collision Benchmarks ---

func BenchmarkCollidesEntities_1000Candidates(b *testing.B) {
	w := setupBenchWorld(1000)
	mover := newBox("mover", XY{20, 20}, WH{32, 32}, CollideBounds)
	candidates := w.Root().Children()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = CollidesEntities(mover, candidates)
	}
}

// --- Render Benchmarks ---

func BenchmarkRender_10000Entities(b *testing.B) {
	w := setupBenchWorld(10000)
	for i, c := range w.Root().Children() {
		c.Elevate(Layer(i % 4))
	}
	var buf RenderBuffer
	w.Render(&buf) // warmup populates sortBuf

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Render(&buf)
	}
}
