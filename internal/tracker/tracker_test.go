package tracker

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pokesight/pokesight/internal/catalog"
	"github.com/pokesight/pokesight/internal/epistemic"
)

// fallback catalog: Garchomp has the TankChomp and Swords Dance sets,
// Dragapult has Choice Specs and Choice Band.
func newTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(catalog.Fallback())
}

func TestReveal(t *testing.T) {
	tr := newTracker(t)

	worlds, err := tr.Reveal("garchomp")
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if worlds != 2 {
		t.Errorf("worlds = %d, want 2", worlds)
	}
	if got := tr.Revealed(); !reflect.DeepEqual(got, []string{"Garchomp"}) {
		t.Errorf("Revealed = %v", got)
	}

	if _, err := tr.Reveal("Garchomp"); err == nil {
		t.Fatal("second reveal should fail")
	} else {
		var already *AlreadyRevealedError
		if !errors.As(err, &already) {
			t.Errorf("error %v is not AlreadyRevealedError", err)
		}
	}
}

func TestReveal_Unknown(t *testing.T) {
	tr := newTracker(t)
	_, err := tr.Reveal("Garchmop")
	// "Garchmop" fuzzy-resolves or suggests; either way a clean miss like
	// "Mewtwo" must produce UnknownPokemonError.
	if err != nil {
		var unknown *UnknownPokemonError
		if !errors.As(err, &unknown) {
			t.Fatalf("error %v is not UnknownPokemonError", err)
		}
	}

	_, err = tr.Reveal("Mewtwo")
	var unknown *UnknownPokemonError
	if !errors.As(err, &unknown) {
		t.Fatalf("Reveal(Mewtwo) error = %v, want UnknownPokemonError", err)
	}
}

func TestObserveMove(t *testing.T) {
	tr := newTracker(t)
	if _, err := tr.Reveal("Garchomp"); err != nil {
		t.Fatal(err)
	}

	// "swords dance" is only on the Swords Dance set; observing it drops
	// the tank set and pins the item.
	dropped, err := tr.ObserveMove("garchomp", "swords dance")
	if err != nil {
		t.Fatalf("ObserveMove: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}

	model, _ := tr.Model("Garchomp")
	if model.Remaining() != 1 {
		t.Fatalf("Remaining = %d, want 1", model.Remaining())
	}
	item, ok := model.KnownScalar("item")
	if !ok || item != "Loaded Dice" {
		t.Errorf("KnownScalar(item) = %q, %v", item, ok)
	}
}

func TestObserveMove_NotRevealed(t *testing.T) {
	tr := newTracker(t)
	_, err := tr.ObserveMove("Garchomp", "Earthquake")
	var notRevealed *NotRevealedError
	if !errors.As(err, &notRevealed) {
		t.Fatalf("error = %v, want NotRevealedError", err)
	}
}

func TestObserveMove_OffCatalog(t *testing.T) {
	tr := newTracker(t)
	if _, err := tr.Reveal("Garchomp"); err != nil {
		t.Fatal(err)
	}

	_, err := tr.ObserveMove("Garchomp", "Hyper Beam")
	var off *OffCatalogError
	if !errors.As(err, &off) {
		t.Fatalf("error = %v, want OffCatalogError", err)
	}

	// The refusal must leave the model untouched.
	model, _ := tr.Model("Garchomp")
	if model.Remaining() != 2 {
		t.Errorf("Remaining after refused observation = %d, want 2", model.Remaining())
	}
}

func TestObserveItemAndAbility(t *testing.T) {
	tr := newTracker(t)
	if _, err := tr.Reveal("Dragapult"); err != nil {
		t.Fatal(err)
	}

	dropped, err := tr.ObserveItem("Dragapult", "choice specs")
	if err != nil {
		t.Fatalf("ObserveItem: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}

	model, _ := tr.Model("Dragapult")
	if ability, ok := model.KnownScalar("ability"); !ok || ability != "Infiltrator" {
		t.Errorf("KnownScalar(ability) = %q, %v; item should have pinned the set", ability, ok)
	}

	// Ability is already known; observing it eliminates nothing.
	dropped, err = tr.ObserveAbility("Dragapult", "Infiltrator")
	if err != nil {
		t.Fatalf("ObserveAbility: %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
}

func TestObserveNoItem(t *testing.T) {
	tr := newTracker(t)
	if _, err := tr.Reveal("Dragapult"); err != nil {
		t.Fatal(err)
	}

	dropped, err := tr.ObserveNoItem("Dragapult", "Choice Specs")
	if err != nil {
		t.Fatalf("ObserveNoItem: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}

	// An off-catalog item is fine for noitem; every world already lacks it.
	dropped, err = tr.ObserveNoItem("Dragapult", "Leftovers")
	if err != nil {
		t.Fatalf("ObserveNoItem off-catalog: %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
}

func TestHistoryAndReplay(t *testing.T) {
	tr := newTracker(t)
	if _, err := tr.Reveal("Garchomp"); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.ObserveMove("Garchomp", "Swords Dance"); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Reveal("Dragapult"); err != nil {
		t.Fatal(err)
	}

	log := tr.History()
	want := []Entry{
		{Pokemon: "Garchomp", Kind: KindReveal},
		{Pokemon: "Garchomp", Kind: KindMove, Value: "Swords Dance"},
		{Pokemon: "Dragapult", Kind: KindReveal},
	}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("History = %+v, want %+v", log, want)
	}

	// A fresh tracker replaying the log lands in the same state.
	replayed := newTracker(t)
	if err := replayed.Replay(log); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	orig, _ := tr.Model("Garchomp")
	back, _ := replayed.Model("Garchomp")
	if back.Remaining() != orig.Remaining() {
		t.Errorf("replayed Remaining = %d, want %d", back.Remaining(), orig.Remaining())
	}
	p := epistemic.MustParseProposition("has_scalar:item:Loaded Dice")
	if back.Probability(p) != orig.Probability(p) {
		t.Error("replayed model diverges from original")
	}
	if !reflect.DeepEqual(replayed.Revealed(), tr.Revealed()) {
		t.Errorf("replayed Revealed = %v", replayed.Revealed())
	}
}
