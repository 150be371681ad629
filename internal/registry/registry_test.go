package registry

import (
	"testing"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/strategy"
)

func TestBuiltinsRegistered(t *testing.T) {
	wantStrategies := []string{"chain", "empty-chain", "locus", "maxtile", "snake", "wise-snake"}
	got := Strategies()
	if len(got) != len(wantStrategies) {
		t.Fatalf("Strategies() returned %d entries, want %d", len(got), len(wantStrategies))
	}
	for i, name := range wantStrategies {
		if got[i].Name != name {
			t.Errorf("Strategies()[%d] = %q, want %q", i, got[i].Name, name)
		}
		if got[i].Description == "" {
			t.Errorf("strategy %q has no description", name)
		}
	}

	wantFinders := []string{"best", "deep", "random"}
	finders := Finders()
	if len(finders) != len(wantFinders) {
		t.Fatalf("Finders() returned %d entries, want %d", len(finders), len(wantFinders))
	}
	for i, name := range wantFinders {
		if finders[i].Name != name {
			t.Errorf("Finders()[%d] = %q, want %q", i, finders[i].Name, name)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := CreateStrategy("nope", Params{}); err == nil {
		t.Error("CreateStrategy should fail for unknown name")
	}
	if _, err := CreateFinder("nope", FinderEnv{}); err == nil {
		t.Error("CreateFinder should fail for unknown name")
	}
	if StrategyExists("nope") || FinderExists("nope") {
		t.Error("unknown names should not exist")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate strategy should panic")
		}
	}()
	RegisterStrategy("maxtile", "again", func(Params) strategy.Strategy { return strategy.MaxTile{} })
}

func TestWiseSnakeTrapToggle(t *testing.T) {
	b, err := board.Parse(nil, "0,0,0,0/2,4,8,0/2,4,8,16/4,8,16,32")
	if err != nil {
		t.Fatal(err)
	}
	p := Params{Snake: strategy.ZigZag(), Trap: strategy.DefaultTrap, TrapAxis: strategy.AxisRows, TrapCheck: true}

	on, _ := CreateStrategy("wise-snake", p)
	if q := on.Evaluate(b); q != 0 {
		t.Errorf("trap check on: quality = %g, want 0", q)
	}

	p.TrapCheck = false
	off, _ := CreateStrategy("wise-snake", p)
	plain, _ := CreateStrategy("snake", p)
	if off.Evaluate(b) != plain.Evaluate(b) {
		t.Errorf("trap check off should match snake: %g vs %g", off.Evaluate(b), plain.Evaluate(b))
	}
}

func TestCreateFinders(t *testing.T) {
	s, _ := CreateStrategy("maxtile", Params{})
	for _, info := range Finders() {
		f, err := CreateFinder(info.Name, FinderEnv{Strategy: s})
		if err != nil {
			t.Fatalf("CreateFinder(%q) failed: %v", info.Name, err)
		}
		b, _ := board.Parse(nil, "2,4,2,4/0,0,0,0/0,0,0,0/0,0,0,0")
		move, ok := f.Find(b)
		if !ok || move.Direction != board.Down {
			t.Errorf("finder %q: got %v %v, want down", info.Name, move, ok)
		}
	}
}
