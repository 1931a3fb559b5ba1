package drawlist

import (
	"testing"

	"github.com/softglow/glimmer/engine/geom"
)

func TestDrawRectEmitsSixVertices(t *testing.T) {
	dl := New(0)
	dl.DrawRect(geom.R(10, 20, 30, 40), geom.R(0, 0, 1, 1), 0xffffffff, 7)

	if got := len(dl.Vertices()); got != 6 {
		t.Fatalf("vertex count = %d, want 6", got)
	}
	cmds := dl.Commands()
	if len(cmds) != 1 {
		t.Fatalf("command count = %d, want 1", len(cmds))
	}
	if cmds[0].Kind != CommandDraw || cmds[0].TextureID != 7 || cmds[0].VertexCount != 6 {
		t.Fatalf("unexpected command %+v", cmds[0])
	}

	// All vertices must lie on the rect corners.
	min, max := geom.V2(10, 20), geom.V2(40, 60)
	for i, v := range dl.Vertices() {
		if (v.Position.X != min.X && v.Position.X != max.X) ||
			(v.Position.Y != min.Y && v.Position.Y != max.Y) {
			t.Errorf("vertex %d position %v not on a corner", i, v.Position)
		}
	}
}

func TestDrawRectMergesSameTexture(t *testing.T) {
	dl := New(0)
	dl.DrawRect(geom.R(0, 0, 1, 1), geom.Rect{}, 0, 1)
	dl.DrawRect(geom.R(1, 0, 1, 1), geom.Rect{}, 0, 1)
	dl.DrawRect(geom.R(2, 0, 1, 1), geom.Rect{}, 0, 2)

	cmds := dl.Commands()
	if len(cmds) != 2 {
		t.Fatalf("command count = %d, want 2", len(cmds))
	}
	if cmds[0].VertexCount != 12 {
		t.Fatalf("merged command vertex count = %d, want 12", cmds[0].VertexCount)
	}
	if got := dl.Stats().QuadCount; got != 3 {
		t.Fatalf("quad count = %d, want 3", got)
	}
	if got := dl.Stats().TotalVertexCount(); got != 18 {
		t.Fatalf("total vertex count = %d, want 18", got)
	}
}

func TestEmptyScissorScopeIsElided(t *testing.T) {
	dl := New(0)
	dl.PushScissor(geom.R(0, 0, 100, 100))
	dl.PopScissor()

	if got := len(dl.Commands()); got != 0 {
		t.Fatalf("command count = %d, want 0 (empty scope elided)", got)
	}
}

func TestNestedEmptyScissorScopesAreElided(t *testing.T) {
	dl := New(0)
	dl.PushScissor(geom.R(0, 0, 100, 100))
	dl.PushScissor(geom.R(10, 10, 50, 50))
	dl.PopScissor()
	dl.PopScissor()

	if got := len(dl.Commands()); got != 0 {
		t.Fatalf("command count = %d, want 0, got commands %+v", got, dl.Commands())
	}
}

func TestScissorScopeWithDrawSurvives(t *testing.T) {
	dl := New(0)
	dl.PushScissor(geom.R(0, 0, 100, 100))
	dl.DrawRect(geom.R(0, 0, 1, 1), geom.Rect{}, 0, 1)
	dl.PopScissor()

	cmds := dl.Commands()
	if len(cmds) != 3 {
		t.Fatalf("command count = %d, want 3", len(cmds))
	}
	if cmds[0].Kind != CommandPushScissor || cmds[1].Kind != CommandDraw || cmds[2].Kind != CommandPopScissor {
		t.Fatalf("unexpected command kinds: %+v", cmds)
	}
	if cmds[0].ScissorRect != geom.R(0, 0, 100, 100) {
		t.Fatalf("scissor rect = %v", cmds[0].ScissorRect)
	}
}

func TestDrawsDoNotMergeAcrossScissor(t *testing.T) {
	dl := New(0)
	dl.DrawRect(geom.R(0, 0, 1, 1), geom.Rect{}, 0, 1)
	dl.PushScissor(geom.R(0, 0, 10, 10))
	dl.DrawRect(geom.R(0, 0, 1, 1), geom.Rect{}, 0, 1)
	dl.PopScissor()

	cmds := dl.Commands()
	if len(cmds) != 4 {
		t.Fatalf("command count = %d, want 4, got %+v", len(cmds), cmds)
	}
}

func TestClearReusesBuffers(t *testing.T) {
	dl := New(4)
	for i := 0; i < 10; i++ {
		dl.DrawRect(geom.R(0, 0, 1, 1), geom.Rect{}, 0, 1)
	}
	dl.Clear()

	if len(dl.Commands()) != 0 || len(dl.Vertices()) != 0 {
		t.Fatal("Clear did not reset lengths")
	}
	if dl.Stats() != (Statistics{}) {
		t.Fatalf("Clear did not reset stats: %+v", dl.Stats())
	}
}
